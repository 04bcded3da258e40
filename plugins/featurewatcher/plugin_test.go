package featurewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/a11ykit/touchpipe"
)

type chanApplier struct {
	applied chan touchpipe.Feature
}

func (a *chanApplier) SetEnabledFeatures(features touchpipe.Feature) {
	a.applied <- features
}

func waitFeatures(t *testing.T, ch <-chan touchpipe.Feature) touchpipe.Feature {
	t.Helper()
	select {
	case f := <-ch:
		return f
	case <-time.After(5 * time.Second):
		t.Fatalf("feature change never applied")
		return 0
	}
}

func TestPluginAppliesFeatureChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("magnifier = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	applier := &chanApplier{applied: make(chan touchpipe.Feature, 4)}
	p := New(Config{DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Initialize(ctx, path, applier, nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer p.Shutdown(context.Background())

	content := "magnifier = true\ntouch_exploration = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	want := touchpipe.FeatureScreenMagnifier | touchpipe.FeatureTouchExploration
	got := waitFeatures(t, applier.applied)
	// Editors can fire several write events; the last applied value wins.
	for got != want {
		got = waitFeatures(t, applier.applied)
	}
}

func TestPluginIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("magnifier = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	applier := &chanApplier{applied: make(chan touchpipe.Feature, 4)}
	p := New(DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Initialize(ctx, path, applier, nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer p.Shutdown(context.Background())

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("magnifier = true\n"), 0o644); err != nil {
		t.Fatalf("write other file: %v", err)
	}

	select {
	case f := <-applier.applied:
		t.Fatalf("unrelated file triggered a reload: %v", f)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestPluginDisabledWithoutTarget(t *testing.T) {
	p := New(DefaultConfig())
	if err := p.Initialize(context.Background(), "", nil, nil); err != nil {
		t.Fatalf("Initialize without target should be a no-op: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
