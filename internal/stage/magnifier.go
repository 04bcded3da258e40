// Package stage provides the built-in transformation stages wired into the
// pipeline chain. The gesture-recognition logic behind magnification and
// touch exploration lives with the host; these stages carry the chain
// contract (transform, forward, clear, destroy) and the viewport/stream
// bookkeeping the pipeline itself depends on.
package stage

import (
	"github.com/a11ykit/touchpipe/internal/domain"
	"github.com/a11ykit/touchpipe/internal/ports"
	"github.com/a11ykit/touchpipe/pkg/log"
)

// Magnifier maps screen coordinates into magnified-viewport coordinates
// before forwarding events downstream. Scale 1 is a pass-through.
type Magnifier struct {
	next   ports.Stage
	logger log.Logger

	scale   float32
	centerX float32
	centerY float32

	gestureActive bool
}

// NewMagnifier creates a magnifier stage with no magnification applied.
func NewMagnifier(logger log.Logger) *Magnifier {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Magnifier{logger: logger, scale: 1}
}

// SetViewport updates the magnification scale and center. Scale values at or
// below zero are ignored.
func (m *Magnifier) SetViewport(scale, centerX, centerY float32) {
	if scale <= 0 {
		return
	}
	m.scale = scale
	m.centerX = centerX
	m.centerY = centerY
}

// OnMotionEvent transforms the event's samples into viewport coordinates and
// forwards it downstream.
func (m *Magnifier) OnMotionEvent(transformed, raw *domain.MotionEvent, policyFlags domain.PolicyFlags) {
	switch transformed.Action {
	case domain.ActionDown:
		m.gestureActive = true
	case domain.ActionUp, domain.ActionCancel:
		m.gestureActive = false
	}
	if m.scale != 1 {
		for i := range transformed.Samples {
			s := &transformed.Samples[i]
			s.X = (s.X-m.centerX)/m.scale + m.centerX
			s.Y = (s.Y-m.centerY)/m.scale + m.centerY
		}
	}
	if m.next != nil {
		m.next.OnMotionEvent(transformed, raw, policyFlags)
	}
}

// SetNext wires the downstream stage.
func (m *Magnifier) SetNext(next ports.Stage) {
	m.next = next
}

// Clear discards in-progress gesture state.
func (m *Magnifier) Clear() {
	m.gestureActive = false
}

// Destroy releases the stage. It must not be used afterwards.
func (m *Magnifier) Destroy() {
	m.logger.Debug("magnifier stage destroyed")
	m.next = nil
}
