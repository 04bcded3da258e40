// Package app orchestrates the pipeline: it owns the filter and serializes
// event ingest, frame callbacks, and feature changes onto one goroutine,
// which is the execution model the filter requires.
package app

import (
	"context"

	"github.com/a11ykit/touchpipe/internal/domain"
	"github.com/a11ykit/touchpipe/internal/pipeline"
	"github.com/a11ykit/touchpipe/internal/ports"
	"github.com/a11ykit/touchpipe/pkg/log"
)

// InputEvent pairs a raw event with its policy flags on the ingest channel.
type InputEvent struct {
	Event       *domain.MotionEvent
	PolicyFlags domain.PolicyFlags
}

// Config holds agent configuration.
type Config struct {
	// Features is the initial feature bitmask applied after install.
	Features pipeline.Feature

	// Filter tunes the underlying filter.
	Filter pipeline.Config
}

// Deps are the agent's collaborators.
type Deps struct {
	// Events is the ingest channel. Closing it drains the queue past every
	// deadline and stops the agent; replay mode relies on this.
	Events <-chan InputEvent

	// Frames carries display frame deadlines in nanoseconds.
	Frames <-chan int64

	// Injector receives final delivered events.
	Injector ports.EventInjector

	// Activity receives user-activity notifications. Optional.
	Activity ports.ActivityMonitor

	// Logger is optional; nil gets a no-op logger.
	Logger log.Logger
}

// Agent drives a Filter from channels. It implements ports.FrameScheduler:
// the filter posts its flush callback here, and the agent invokes it on the
// next frame tick, inside the same loop that feeds ingest. This keeps the
// whole pipeline on one logical control thread.
type Agent struct {
	filter  *pipeline.Filter
	events  <-chan InputEvent
	frames  <-chan int64
	changes chan pipeline.Feature
	logger  log.Logger

	// pending is the armed flush callback, at most one at a time.
	pending func(frameTimeNanos int64)

	delivered int
}

// New creates an agent and its filter.
func New(cfg Config, deps Deps) *Agent {
	logger := deps.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	a := &Agent{
		events:  deps.Events,
		frames:  deps.Frames,
		changes: make(chan pipeline.Feature, 4),
		logger:  logger,
	}
	a.filter = pipeline.New(cfg.Filter, a, deps.Activity, deps.Injector, logger)
	a.filter.SetEnabledFeatures(cfg.Features)
	return a
}

// Run installs the filter and processes events and frame ticks until the
// context is cancelled or the event channel is closed. On a closed channel
// the remaining queue is drained past every deadline before returning; on
// cancellation the filter is uninstalled and queued batches are discarded.
func (a *Agent) Run(ctx context.Context) error {
	a.filter.Install()
	defer a.filter.Uninstall()

	a.logger.Info("pipeline started",
		log.Stringer("features", a.filter.EnabledFeatures()),
	)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("pipeline stopping", log.Int("delivered", a.delivered))
			return ctx.Err()

		case in, ok := <-a.events:
			if !ok {
				a.drain()
				a.logger.Info("pipeline drained", log.Int("delivered", a.delivered))
				return nil
			}
			a.delivered++
			a.filter.OnInputEvent(in.Event, in.PolicyFlags)

		case frameTime := <-a.frames:
			a.fire(frameTime)

		case features := <-a.changes:
			a.filter.SetEnabledFeatures(features)
			a.logger.Info("features changed", log.Stringer("features", features))
		}
	}
}

// SetEnabledFeatures requests a feature-bitmask change from any goroutine.
// The change is applied inside the run loop. Requests are dropped with a
// warning if the loop cannot keep up.
func (a *Agent) SetEnabledFeatures(features pipeline.Feature) {
	select {
	case a.changes <- features:
	default:
		a.logger.Warn("feature change dropped, run loop busy")
	}
}

// PostCallback implements ports.FrameScheduler. Only the filter calls it,
// always from within the run loop, so no locking is needed. A callback
// posted while one is pending is ignored.
func (a *Agent) PostCallback(cb func(frameTimeNanos int64)) {
	if a.pending == nil {
		a.pending = cb
	}
}

// fire invokes the pending flush callback, if any, for one frame.
func (a *Agent) fire(frameTimeNanos int64) {
	cb := a.pending
	a.pending = nil
	if cb != nil {
		cb(frameTimeNanos)
	}
}

// drain flushes until no callback re-arms, using a deadline past every
// representable timestamp so nothing stays queued.
func (a *Agent) drain() {
	const maxInt64 = int64(^uint64(0) >> 1)
	for a.pending != nil {
		a.fire(maxInt64)
	}
}
