package stage

import (
	"github.com/a11ykit/touchpipe/internal/domain"
	"github.com/a11ykit/touchpipe/internal/ports"
	"github.com/a11ykit/touchpipe/pkg/log"
)

// TouchExplorer tracks the active touch stream for explore-by-touch hosts
// and forwards events downstream. Gesture interpretation happens in the
// host; the stage owns the stream bookkeeping the chain contract requires.
type TouchExplorer struct {
	next   ports.Stage
	logger log.Logger

	streamActive bool
	lastDeviceID int32
}

// NewTouchExplorer creates a touch exploration stage.
func NewTouchExplorer(logger log.Logger) *TouchExplorer {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &TouchExplorer{logger: logger, lastDeviceID: domain.UndefinedDeviceID}
}

// OnMotionEvent records the stream state and forwards the event downstream.
func (t *TouchExplorer) OnMotionEvent(transformed, raw *domain.MotionEvent, policyFlags domain.PolicyFlags) {
	switch transformed.Action {
	case domain.ActionDown:
		t.streamActive = true
		t.lastDeviceID = transformed.DeviceID
	case domain.ActionUp, domain.ActionCancel:
		t.streamActive = false
	}
	if t.next != nil {
		t.next.OnMotionEvent(transformed, raw, policyFlags)
	}
}

// SetNext wires the downstream stage.
func (t *TouchExplorer) SetNext(next ports.Stage) {
	t.next = next
}

// Clear discards the in-progress touch stream.
func (t *TouchExplorer) Clear() {
	t.streamActive = false
	t.lastDeviceID = domain.UndefinedDeviceID
}

// Destroy releases the stage. It must not be used afterwards.
func (t *TouchExplorer) Destroy() {
	t.logger.Debug("touch explorer stage destroyed")
	t.next = nil
}

// Exploring reports whether a touch stream is currently active.
func (t *TouchExplorer) Exploring() bool {
	return t.streamActive
}
