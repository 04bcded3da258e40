package ports

// FrameScheduler schedules work to run once, right before the next display
// frame. At most one callback is pending at a time; posting while one is
// already pending is a harmless no-op. The callback receives the frame
// deadline in nanoseconds.
type FrameScheduler interface {
	PostCallback(cb func(frameTimeNanos int64))
}
