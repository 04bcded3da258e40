// Package featurewatcher reloads the pipeline's feature bitmask when the
// touchpipe config file changes, so magnification and touch exploration can
// be toggled on a running pipeline without a restart.
package featurewatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/a11ykit/touchpipe"
	"github.com/a11ykit/touchpipe/internal/cliconfig"
	"github.com/a11ykit/touchpipe/pkg/log"
)

// Applier receives reloaded feature bitmasks. The app agent implements it;
// applying happens on the pipeline's own goroutine.
type Applier interface {
	SetEnabledFeatures(features touchpipe.Feature)
}

// Config holds configuration options for the feature watcher plugin.
type Config struct {
	// DebounceDelay is how long to wait after a file change before
	// reloading, absorbing editor write bursts. Default: 100 milliseconds.
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// Plugin watches a config file and applies feature-flag changes.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration

	path   string
	target Applier
	logger log.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
	timer  *time.Timer
}

// New creates a feature watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{debounceDelay: cfg.DebounceDelay}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "featurewatcher"
}

// Initialize starts watching path and applying feature changes to target.
func (p *Plugin) Initialize(ctx context.Context, path string, target Applier, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	p.path = path
	p.target = target
	p.logger = logger

	if p.path == "" || p.target == nil {
		p.logger.Warn("feature watcher disabled: no config path or target")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("feature watcher initialized", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("feature watcher: create watcher failed", log.Err(err))
		return
	}
	defer watcher.Close()

	// Watch the directory: editors replace files rather than write in place,
	// and a watch on the file itself breaks on rename.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		p.logger.Error("feature watcher: watch failed", log.Err(err))
		return
	}

	target := filepath.Base(p.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("feature watcher: watch error", log.Err(err))
		}
	}
}

// scheduleReload debounces rapid change bursts into one reload.
func (p *Plugin) scheduleReload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounceDelay, p.reload)
}

func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("feature watcher: reload failed", log.Err(err))
		return
	}
	var features touchpipe.Feature
	if fc.Magnifier != nil && *fc.Magnifier {
		features |= touchpipe.FeatureScreenMagnifier
	}
	if fc.TouchExploration != nil && *fc.TouchExploration {
		features |= touchpipe.FeatureTouchExploration
	}
	p.logger.Info("feature watcher: applying features", log.Stringer("features", features))
	p.target.SetEnabledFeatures(features)
}
