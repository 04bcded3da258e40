package domain

import "fmt"

// SampleRecord is the JSON representation of a single pointer sample.
type SampleRecord struct {
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Pressure float32 `json:"pressure,omitempty"`
	TimeNS   int64   `json:"time_ns"`
}

// EventRecord is the JSON representation of a raw event line in a trace
// recording. Source and action are serialized as names rather than numeric
// codes so recordings stay readable and diffable.
type EventRecord struct {
	DeviceID    int32          `json:"device_id"`
	Source      string         `json:"source"`
	Action      string         `json:"action"`
	PolicyFlags uint32         `json:"policy_flags"`
	DownTimeNS  int64          `json:"down_time_ns,omitempty"`
	Samples     []SampleRecord `json:"samples"`
}

// ToRecord converts a motion event and its policy flags to an EventRecord.
func ToRecord(e *MotionEvent, flags PolicyFlags) EventRecord {
	samples := make([]SampleRecord, len(e.Samples))
	for i, s := range e.Samples {
		samples[i] = SampleRecord{X: s.X, Y: s.Y, Pressure: s.Pressure, TimeNS: s.EventTimeNanos}
	}
	return EventRecord{
		DeviceID:    e.DeviceID,
		Source:      e.Source.String(),
		Action:      e.Action.String(),
		PolicyFlags: uint32(flags),
		DownTimeNS:  e.DownTimeNanos,
		Samples:     samples,
	}
}

// ToEvent converts a record back to a motion event and policy flags.
// A record with no samples or an unrecognized source/action name is invalid.
func (r EventRecord) ToEvent() (*MotionEvent, PolicyFlags, error) {
	if len(r.Samples) == 0 {
		return nil, 0, fmt.Errorf("event record has no samples")
	}
	source, err := ParseSource(r.Source)
	if err != nil {
		return nil, 0, err
	}
	action, err := ParseAction(r.Action)
	if err != nil {
		return nil, 0, err
	}
	samples := make([]Sample, len(r.Samples))
	for i, s := range r.Samples {
		samples[i] = Sample{X: s.X, Y: s.Y, Pressure: s.Pressure, EventTimeNanos: s.TimeNS}
	}
	ev := &MotionEvent{
		DeviceID:      r.DeviceID,
		Source:        source,
		Action:        action,
		DownTimeNanos: r.DownTimeNS,
		Samples:       samples,
	}
	return ev, PolicyFlags(r.PolicyFlags), nil
}

// ParseSource converts a source name to its Source value.
func ParseSource(name string) (Source, error) {
	switch name {
	case "touchscreen":
		return SourceTouchscreen, nil
	case "keyboard":
		return SourceKeyboard, nil
	case "mouse":
		return SourceMouse, nil
	case "stylus":
		return SourceStylus, nil
	case "unknown":
		return SourceUnknown, nil
	default:
		return SourceUnknown, fmt.Errorf("unknown source %q", name)
	}
}

// ParseAction converts an action name to its Action value.
func ParseAction(name string) (Action, error) {
	switch name {
	case "down":
		return ActionDown, nil
	case "move":
		return ActionMove, nil
	case "up":
		return ActionUp, nil
	case "cancel":
		return ActionCancel, nil
	default:
		return ActionDown, fmt.Errorf("unknown action %q", name)
	}
}
