package domain

// Source identifies the class of input device an event originated from.
type Source uint32

// Known input sources.
const (
	SourceUnknown Source = iota
	SourceTouchscreen
	SourceKeyboard
	SourceMouse
	SourceStylus
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceTouchscreen:
		return "touchscreen"
	case SourceKeyboard:
		return "keyboard"
	case SourceMouse:
		return "mouse"
	case SourceStylus:
		return "stylus"
	default:
		return "unknown"
	}
}

// Action describes what a motion event represents within a gesture stream.
type Action uint32

// Motion event actions. Down and Up delimit a gesture; Move samples between
// them are candidates for coalescing. Cancel aborts a gesture in flight.
const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PolicyFlags is the window-policy bitmask attached to each raw event by the
// input dispatcher.
type PolicyFlags uint32

// FlagPassToUser marks an event as intended for delivery to the user. Events
// without this bit bypass the pipeline entirely.
const FlagPassToUser PolicyFlags = 0x40000000

// UndefinedDeviceID is the sentinel device id tracked by a freshly installed
// pipeline before any touch event has been seen.
const UndefinedDeviceID int32 = -1

// Sample is a single pointer sample within a motion event.
type Sample struct {
	// X and Y are the pointer coordinates in display pixels.
	X float32
	Y float32

	// Pressure is the normalized contact pressure, 0 to 1.
	Pressure float32

	// EventTimeNanos is the sample timestamp in nanoseconds.
	EventTimeNanos int64
}

// MotionEvent is a touch event carrying one or more time-ordered samples.
// A multi-sample event is a batch: consecutive compatible move samples merged
// into a single unit for per-frame delivery.
type MotionEvent struct {
	// DeviceID identifies the physical input device.
	DeviceID int32

	// Source is the device class the event originated from.
	Source Source

	// Action is the gesture phase this event represents.
	Action Action

	// DownTimeNanos is the timestamp of the gesture's initial down event.
	DownTimeNanos int64

	// Samples holds the time-ordered pointer samples. Always non-empty.
	// The last sample is the current one; earlier entries are history.
	Samples []Sample
}

// NewMotionEvent creates a single-sample motion event.
func NewMotionEvent(deviceID int32, source Source, action Action, downTimeNanos int64, sample Sample) *MotionEvent {
	return &MotionEvent{
		DeviceID:      deviceID,
		Source:        source,
		Action:        action,
		DownTimeNanos: downTimeNanos,
		Samples:       []Sample{sample},
	}
}

// EventTimeNanos returns the timestamp of the most recent sample.
func (e *MotionEvent) EventTimeNanos() int64 {
	if len(e.Samples) == 0 {
		return 0
	}
	return e.Samples[len(e.Samples)-1].EventTimeNanos
}

// SampleCount returns the number of samples carried by the event.
func (e *MotionEvent) SampleCount() int {
	return len(e.Samples)
}

// AddBatch merges src's samples into e when the two events are compatible
// under the given policy. Returns false without modifying e when they are not.
func (e *MotionEvent) AddBatch(src *MotionEvent, policy MergePolicy) bool {
	if !policy.CanMerge(e, src) {
		return false
	}
	e.Samples = append(e.Samples, src.Samples...)
	return true
}

// Clone returns a deep copy of the event. The copy shares no sample storage
// with the original, so a transformation stage may mutate it freely.
func (e *MotionEvent) Clone() *MotionEvent {
	samples := make([]Sample, len(e.Samples))
	copy(samples, e.Samples)
	return &MotionEvent{
		DeviceID:      e.DeviceID,
		Source:        e.Source,
		Action:        e.Action,
		DownTimeNanos: e.DownTimeNanos,
		Samples:       samples,
	}
}
