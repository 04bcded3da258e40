package vsync

import "context"

// StepClock is a manual frame source. Each Advance call emits one frame
// deadline; the send blocks until the consumer picks it up, which makes
// replay and tests deterministic.
type StepClock struct {
	frames chan int64
}

// NewStepClock creates a manual frame source.
func NewStepClock() *StepClock {
	return &StepClock{frames: make(chan int64)}
}

// Frames returns the channel of frame deadlines.
func (c *StepClock) Frames() <-chan int64 {
	return c.frames
}

// Advance emits one frame with the given deadline. Blocks until consumed.
func (c *StepClock) Advance(frameTimeNanos int64) {
	c.frames <- frameTimeNanos
}

// AdvanceContext is Advance with cancellation, for feeders that may outlive
// their consumer.
func (c *StepClock) AdvanceContext(ctx context.Context, frameTimeNanos int64) error {
	select {
	case c.frames <- frameTimeNanos:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the frame channel. No Advance may follow.
func (c *StepClock) Close() {
	close(c.frames)
}
