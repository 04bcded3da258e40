// Package touchpipe provides a frame-batched transformation pipeline for
// touchscreen input. It intercepts raw touch events, coalesces rapid move
// samples into per-display-frame batches, runs each batch through an ordered
// chain of optional transformation stages (screen magnification, touch
// exploration), and delivers the result to a terminal sink.
//
// Example usage:
//
//	filter := touchpipe.NewFilter(touchpipe.FilterConfig{}, scheduler, nil, injector, logger)
//	filter.Install()
//	filter.SetEnabledFeatures(touchpipe.FeatureScreenMagnifier)
//	filter.OnInputEvent(event, flags)
//
// The filter must be created and driven from a single goroutine. See
// internal/app for a channel-based run loop that enforces this.
package touchpipe

import (
	"github.com/a11ykit/touchpipe/internal/domain"
	"github.com/a11ykit/touchpipe/internal/pipeline"
	"github.com/a11ykit/touchpipe/internal/ports"
	"github.com/a11ykit/touchpipe/pkg/log"
)

// Feature is the bitmask of transformation features the pipeline can enable.
type Feature = pipeline.Feature

// Feature flags.
const (
	FeatureScreenMagnifier  = pipeline.FeatureScreenMagnifier
	FeatureTouchExploration = pipeline.FeatureTouchExploration
)

// Filter is the accessibility input filter.
type Filter = pipeline.Filter

// FilterConfig tunes a Filter.
type FilterConfig = pipeline.Config

// MotionEvent is a touch event carrying one or more time-ordered samples.
type MotionEvent = domain.MotionEvent

// PolicyFlags is the window-policy bitmask attached to each raw event.
type PolicyFlags = domain.PolicyFlags

// FlagPassToUser marks an event as intended for delivery to the user.
const FlagPassToUser = domain.FlagPassToUser

// Stage is one link in the event transformation chain.
type Stage = ports.Stage

// FrameScheduler schedules a callback before the next display frame.
type FrameScheduler = ports.FrameScheduler

// EventInjector is the terminal consumer of delivered events.
type EventInjector = ports.EventInjector

// ActivityMonitor receives user-activity notifications.
type ActivityMonitor = ports.ActivityMonitor

// Logger is the structured logging interface used across the module.
type Logger = log.Logger

// NewFilter creates a filter wired to its collaborators. activity and logger
// may be nil.
func NewFilter(cfg FilterConfig, scheduler FrameScheduler, activity ActivityMonitor, injector EventInjector, logger Logger) *Filter {
	return pipeline.New(cfg, scheduler, activity, injector, logger)
}
