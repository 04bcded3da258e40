package vsync

import (
	"testing"
	"time"
)

func TestStepClockDeliversFrames(t *testing.T) {
	c := NewStepClock()
	go c.Advance(500)

	select {
	case got := <-c.Frames():
		if got != 500 {
			t.Fatalf("expected frame time 500, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("frame never arrived")
	}
}

func TestTickerEmitsFrames(t *testing.T) {
	ticker := NewTicker(1000)
	ticker.Start()
	defer ticker.Stop()

	select {
	case ft := <-ticker.Frames():
		if ft <= 0 {
			t.Fatalf("expected positive frame time, got %d", ft)
		}
	case <-time.After(time.Second):
		t.Fatalf("ticker never ticked")
	}
}

func TestTickerIntervalFromRate(t *testing.T) {
	ticker := NewTicker(60)
	rate := 60.0
	want := time.Duration(float64(time.Second) / rate)
	if ticker.Interval() != want {
		t.Fatalf("expected interval %v, got %v", want, ticker.Interval())
	}

	fallback := NewTicker(0)
	defaultRate := float64(DefaultRefreshRate)
	if fallback.Interval() != time.Duration(float64(time.Second)/defaultRate) {
		t.Fatalf("zero rate must fall back to the default")
	}
}
