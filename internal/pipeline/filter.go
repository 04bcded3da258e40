// Package pipeline implements the input filter that sits between raw
// touchscreen input and application delivery. It decides per event whether
// to bypass, reset, or batch; coalesces batched events per display frame;
// and pushes flushed events through the transformation chain.
package pipeline

import (
	"github.com/a11ykit/touchpipe/internal/domain"
	"github.com/a11ykit/touchpipe/internal/ports"
	"github.com/a11ykit/touchpipe/internal/queue"
	"github.com/a11ykit/touchpipe/pkg/log"
)

// Feature is the bitmask of transformation features the pipeline can enable.
type Feature uint32

// Feature flags. Chain order is fixed: magnifier before touch exploration
// before the terminal sink, regardless of enable order.
const (
	FeatureScreenMagnifier Feature = 1 << iota
	FeatureTouchExploration
)

// StageFactories supplies constructors for the optional transformation
// stages. A nil factory for an enabled feature falls back to the built-in
// shell stage.
type StageFactories struct {
	NewMagnifier     func() ports.Stage
	NewTouchExplorer func() ports.Stage
}

// Config tunes a Filter.
type Config struct {
	// Merge is the batching-compatibility rule. Zero value gets
	// domain.DefaultMergePolicy.
	Merge domain.MergePolicy

	// PoolCapacity bounds the batch-node free list. Zero gets
	// queue.DefaultPoolCapacity.
	PoolCapacity int

	// Stages overrides the transformation stage constructors.
	Stages StageFactories
}

// Filter is the accessibility input filter. It must be created and driven
// from a single goroutine; the scheduled flush callback runs between ingest
// calls, never concurrently with one.
//
// Filter itself implements ports.Stage as the terminal sink of the chain.
type Filter struct {
	scheduler ports.FrameScheduler
	activity  ports.ActivityMonitor
	injector  ports.EventInjector
	logger    log.Logger
	factories StageFactories

	queue *queue.Queue

	installed bool
	features  Feature
	deviceID  int32

	magnifier ports.Stage
	explorer  ports.Stage
	handler   ports.Stage
}

// New creates a filter wired to its collaborators. The filter is inactive
// until Install is called.
func New(cfg Config, scheduler ports.FrameScheduler, activity ports.ActivityMonitor, injector ports.EventInjector, logger log.Logger) *Filter {
	merge := cfg.Merge
	if merge == (domain.MergePolicy{}) {
		merge = domain.DefaultMergePolicy()
	}
	if activity == nil {
		activity = ports.NoopActivityMonitor{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Filter{
		scheduler: scheduler,
		activity:  activity,
		injector:  injector,
		logger:    logger,
		factories: cfg.Stages,
		queue:     queue.New(merge, cfg.PoolCapacity),
		deviceID:  domain.UndefinedDeviceID,
	}
}

// Install activates the filter. The transformation chain is rebuilt from the
// current feature bitmask and the tracked device id resets to undefined.
func (f *Filter) Install() {
	f.logger.Debug("input filter installed")
	f.installed = true
	f.deviceID = domain.UndefinedDeviceID
	f.disableFeatures()
	f.enableFeatures()
}

// Uninstall deactivates the filter. All stages are torn down and any queued
// batches are discarded without delivery.
func (f *Filter) Uninstall() {
	f.logger.Debug("input filter uninstalled")
	f.installed = false
	f.disableFeatures()
	f.queue.Clear()
}

// Installed reports whether the filter is active.
func (f *Filter) Installed() bool {
	return f.installed
}

// HasEventHandler reports whether the chain currently has an entry stage,
// i.e. whether any feature is enabled. Callers may bypass the filter
// entirely when it does not.
func (f *Filter) HasEventHandler() bool {
	return f.handler != nil
}

// OnInputEvent is the ingest front-end: it routes one raw event, deciding
// whether to bypass the pipeline, reset it, or enqueue for batching.
func (f *Filter) OnInputEvent(event *domain.MotionEvent, policyFlags domain.PolicyFlags) {
	if f.handler == nil {
		f.injector.SendInputEvent(event, policyFlags)
		return
	}
	if event.Source != domain.SourceTouchscreen {
		f.injector.SendInputEvent(event, policyFlags)
		return
	}
	if policyFlags&domain.FlagPassToUser == 0 {
		// Not for the user: drop any in-flight gesture state, then pass
		// the event through untouched.
		f.handler.Clear()
		f.injector.SendInputEvent(event, policyFlags)
		return
	}
	if f.deviceID != event.DeviceID {
		if f.deviceID != domain.UndefinedDeviceID {
			f.logger.Debug("device switch, clearing chain state",
				log.Int32("from", f.deviceID),
				log.Int32("to", event.DeviceID),
			)
			f.handler.Clear()
		}
		f.deviceID = event.DeviceID
	}
	if f.queue.Enqueue(event, policyFlags) {
		f.scheduler.PostCallback(f.onFrame)
	}
}

// SetEnabledFeatures replaces the feature bitmask. Setting the same value is
// a no-op. Any change tears down every instantiated stage and rebuilds the
// chain from scratch; old stage instances are never reused.
func (f *Filter) SetEnabledFeatures(features Feature) {
	if f.features == features {
		return
	}
	if f.installed {
		f.disableFeatures()
	}
	f.features = features
	if f.installed {
		f.enableFeatures()
	}
}

// EnabledFeatures returns the current feature bitmask.
func (f *Filter) EnabledFeatures() Feature {
	return f.features
}

// onFrame is the scheduled flush callback. It drains batches older than the
// frame deadline and re-arms itself while work remains.
func (f *Filter) onFrame(frameTimeNanos int64) {
	if f.queue.Flush(frameTimeNanos, f.handleMotionEvent) {
		f.scheduler.PostCallback(f.onFrame)
	}
}

// handleMotionEvent delivers one flushed batch into the chain.
func (f *Filter) handleMotionEvent(event *domain.MotionEvent, policyFlags domain.PolicyFlags) {
	f.activity.UserActivity(event.EventTimeNanos())
	if f.handler == nil {
		// Chain torn down between enqueue and flush.
		f.injector.SendInputEvent(event, policyFlags)
		return
	}
	f.handler.OnMotionEvent(event.Clone(), event, policyFlags)
}

// OnMotionEvent implements ports.Stage: the filter is the terminal sink, so
// a transformed event arriving here is re-injected into the input stream.
func (f *Filter) OnMotionEvent(transformed, raw *domain.MotionEvent, policyFlags domain.PolicyFlags) {
	f.injector.SendInputEvent(transformed, policyFlags)
}

// SetNext implements ports.Stage. The terminal sink has no downstream.
func (f *Filter) SetNext(next ports.Stage) {}

// Clear implements ports.Stage. The terminal sink keeps no gesture state.
func (f *Filter) Clear() {}

// Destroy implements ports.Stage.
func (f *Filter) Destroy() {}
