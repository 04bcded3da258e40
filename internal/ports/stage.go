package ports

import "github.com/a11ykit/touchpipe/internal/domain"

// Stage is one link in the event transformation chain. A stage receives a
// batched motion event, may transform it or synthesize new events, and
// forwards the result to the next stage. The terminal stage injects into the
// real input stream.
//
// Stages are single-goroutine objects: the pipeline calls them only from its
// own control flow, never concurrently.
type Stage interface {
	// OnMotionEvent processes a batched event. transformed is the stage's
	// working copy and may be mutated in place; raw is the original event
	// and must be treated as read-only.
	OnMotionEvent(transformed, raw *domain.MotionEvent, policyFlags domain.PolicyFlags)

	// SetNext wires the stage's downstream.
	SetNext(next Stage)

	// Clear discards any in-progress gesture or transform state.
	Clear()

	// Destroy releases resources before the stage is dropped. A destroyed
	// stage is never reused.
	Destroy()
}
