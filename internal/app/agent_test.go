package app

import (
	"context"
	"testing"
	"time"

	"github.com/a11ykit/touchpipe/internal/domain"
	"github.com/a11ykit/touchpipe/internal/pipeline"
)

type captureInjector struct {
	events []*domain.MotionEvent
}

func (c *captureInjector) SendInputEvent(event *domain.MotionEvent, flags domain.PolicyFlags) {
	c.events = append(c.events, event)
}

func touch(device int32, action domain.Action, ts int64) InputEvent {
	return InputEvent{
		Event:       domain.NewMotionEvent(device, domain.SourceTouchscreen, action, ts, domain.Sample{EventTimeNanos: ts}),
		PolicyFlags: domain.FlagPassToUser,
	}
}

func waitErr(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("agent did not stop")
		return nil
	}
}

func TestAgentDrainsOnClosedEvents(t *testing.T) {
	events := make(chan InputEvent)
	frames := make(chan int64)
	inj := &captureInjector{}

	a := New(
		Config{Features: pipeline.FeatureScreenMagnifier},
		Deps{Events: events, Frames: frames, Injector: inj},
	)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	events <- touch(1, domain.ActionDown, 100)
	events <- touch(1, domain.ActionUp, 200)
	close(events)

	if err := waitErr(t, done); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(inj.events) != 2 {
		t.Fatalf("expected 2 delivered events after drain, got %d", len(inj.events))
	}
	if inj.events[0].EventTimeNanos() != 100 || inj.events[1].EventTimeNanos() != 200 {
		t.Fatalf("events delivered out of order: %v, %v",
			inj.events[0].EventTimeNanos(), inj.events[1].EventTimeNanos())
	}
}

func TestAgentFlushesOnFrameTicks(t *testing.T) {
	events := make(chan InputEvent)
	frames := make(chan int64)
	inj := &captureInjector{}

	a := New(
		Config{Features: pipeline.FeatureTouchExploration},
		Deps{Events: events, Frames: frames, Injector: inj},
	)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	events <- touch(1, domain.ActionDown, 100)

	// A frame before the event's timestamp delivers nothing.
	frames <- 50
	// The next frame flushes it.
	frames <- 200

	close(events)
	if err := waitErr(t, done); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(inj.events) != 1 {
		t.Fatalf("expected exactly 1 delivery, got %d", len(inj.events))
	}
}

func TestAgentCancelDiscardsQueue(t *testing.T) {
	events := make(chan InputEvent)
	frames := make(chan int64)
	inj := &captureInjector{}

	a := New(
		Config{Features: pipeline.FeatureScreenMagnifier},
		Deps{Events: events, Frames: frames, Injector: inj},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	events <- touch(1, domain.ActionDown, 100)
	cancel()

	if err := waitErr(t, done); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(inj.events) != 0 {
		t.Fatalf("cancelled run must discard queued events, got %d", len(inj.events))
	}
}

func TestAgentAppliesFeatureChanges(t *testing.T) {
	events := make(chan InputEvent)
	frames := make(chan int64)
	inj := &captureInjector{}

	a := New(Config{}, Deps{Events: events, Frames: frames, Injector: inj})

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	a.SetEnabledFeatures(pipeline.FeatureTouchExploration)

	// Whether the change lands before or after the event, exactly one
	// delivery results: pass-through when it lands after, a frame-flushed
	// batch when it lands before.
	events <- touch(1, domain.ActionDown, 100)
	frames <- 200

	close(events)
	if err := waitErr(t, done); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(inj.events) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(inj.events))
	}
}
