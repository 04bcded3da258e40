package domain

import "testing"

func moveEvent(device int32, times ...int64) *MotionEvent {
	samples := make([]Sample, len(times))
	for i, ts := range times {
		samples[i] = Sample{X: float32(i), Y: float32(i), EventTimeNanos: ts}
	}
	return &MotionEvent{
		DeviceID: device,
		Source:   SourceTouchscreen,
		Action:   ActionMove,
		Samples:  samples,
	}
}

func TestCanMerge(t *testing.T) {
	policy := DefaultMergePolicy()

	tests := []struct {
		name string
		dst  *MotionEvent
		src  *MotionEvent
		want bool
	}{
		{
			name: "compatible move samples",
			dst:  moveEvent(1, 100),
			src:  moveEvent(1, 200),
			want: true,
		},
		{
			name: "different device",
			dst:  moveEvent(1, 100),
			src:  moveEvent(2, 200),
			want: false,
		},
		{
			name: "down is a gesture boundary",
			dst:  moveEvent(1, 100),
			src: &MotionEvent{
				DeviceID: 1, Source: SourceTouchscreen, Action: ActionDown,
				Samples: []Sample{{EventTimeNanos: 200}},
			},
			want: false,
		},
		{
			name: "up is a gesture boundary",
			dst: &MotionEvent{
				DeviceID: 1, Source: SourceTouchscreen, Action: ActionUp,
				Samples: []Sample{{EventTimeNanos: 100}},
			},
			src:  moveEvent(1, 200),
			want: false,
		},
		{
			name: "different source",
			dst:  moveEvent(1, 100),
			src: &MotionEvent{
				DeviceID: 1, Source: SourceStylus, Action: ActionMove,
				Samples: []Sample{{EventTimeNanos: 200}},
			},
			want: false,
		},
		{
			name: "time running backwards",
			dst:  moveEvent(1, 300),
			src:  moveEvent(1, 200),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.CanMerge(tt.dst, tt.src); got != tt.want {
				t.Fatalf("CanMerge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanMergeHistoryCap(t *testing.T) {
	policy := MergePolicy{MaxHistorySamples: 3}
	dst := moveEvent(1, 100, 200)
	src := moveEvent(1, 300, 400)

	if policy.CanMerge(dst, src) {
		t.Fatalf("expected merge rejected at history cap")
	}
	if !policy.CanMerge(dst, moveEvent(1, 300)) {
		t.Fatalf("expected merge allowed under history cap")
	}
}

func TestAddBatchAppendsSamples(t *testing.T) {
	policy := DefaultMergePolicy()
	dst := moveEvent(1, 100)
	src := moveEvent(1, 200, 300)

	if !dst.AddBatch(src, policy) {
		t.Fatalf("AddBatch failed for compatible events")
	}
	if dst.SampleCount() != 3 {
		t.Fatalf("expected 3 samples after merge, got %d", dst.SampleCount())
	}
	if dst.EventTimeNanos() != 300 {
		t.Fatalf("expected event time 300 after merge, got %d", dst.EventTimeNanos())
	}

	incompatible := moveEvent(2, 400)
	if dst.AddBatch(incompatible, policy) {
		t.Fatalf("AddBatch succeeded for a different device")
	}
	if dst.SampleCount() != 3 {
		t.Fatalf("failed AddBatch modified the event")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := moveEvent(1, 100, 200)
	clone := original.Clone()

	clone.Samples[0].X = 999

	if original.Samples[0].X == 999 {
		t.Fatalf("clone shares sample storage with original")
	}
	if clone.DeviceID != original.DeviceID || clone.EventTimeNanos() != original.EventTimeNanos() {
		t.Fatalf("clone differs from original: %+v vs %+v", clone, original)
	}
}

func TestEventRecordRoundTrip(t *testing.T) {
	event := NewMotionEvent(3, SourceTouchscreen, ActionDown, 50, Sample{X: 10, Y: 20, Pressure: 0.5, EventTimeNanos: 100})
	rec := ToRecord(event, FlagPassToUser)

	back, flags, err := rec.ToEvent()
	if err != nil {
		t.Fatalf("ToEvent returned error: %v", err)
	}
	if flags != FlagPassToUser {
		t.Fatalf("expected flags %#x, got %#x", FlagPassToUser, flags)
	}
	if back.DeviceID != 3 || back.Source != SourceTouchscreen || back.Action != ActionDown {
		t.Fatalf("round trip mangled event: %+v", back)
	}
	if back.Samples[0] != event.Samples[0] {
		t.Fatalf("round trip mangled sample: %+v vs %+v", back.Samples[0], event.Samples[0])
	}
}

func TestEventRecordRejectsInvalid(t *testing.T) {
	if _, _, err := (EventRecord{Source: "touchscreen", Action: "move"}).ToEvent(); err == nil {
		t.Fatalf("expected error for record with no samples")
	}
	rec := EventRecord{Source: "telepathy", Action: "move", Samples: []SampleRecord{{TimeNS: 1}}}
	if _, _, err := rec.ToEvent(); err == nil {
		t.Fatalf("expected error for unknown source")
	}
	rec = EventRecord{Source: "touchscreen", Action: "wiggle", Samples: []SampleRecord{{TimeNS: 1}}}
	if _, _, err := rec.ToEvent(); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
