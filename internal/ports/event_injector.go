package ports

import "github.com/a11ykit/touchpipe/internal/domain"

// EventInjector delivers a final, possibly transformed event into the real
// input stream. It is the terminal consumer of the pipeline; this module
// does not specify its internals.
type EventInjector interface {
	SendInputEvent(event *domain.MotionEvent, policyFlags domain.PolicyFlags)
}
