// Package vsync provides frame-tick sources for the pipeline's scheduled
// flush. Ticker approximates a display refresh signal in real time;
// StepClock advances frames manually for tests and deterministic replay.
package vsync

import "time"

// DefaultRefreshRate is the frame rate assumed when none is configured.
const DefaultRefreshRate = 60.0

// Ticker emits frame deadlines (unix nanoseconds) at a fixed refresh rate.
type Ticker struct {
	interval time.Duration
	frames   chan int64
	done     chan struct{}
}

// NewTicker creates a frame ticker at the given refresh rate in Hz.
// Rates at or below zero fall back to DefaultRefreshRate.
func NewTicker(refreshRate float64) *Ticker {
	if refreshRate <= 0 {
		refreshRate = DefaultRefreshRate
	}
	return &Ticker{
		interval: time.Duration(float64(time.Second) / refreshRate),
		frames:   make(chan int64, 1),
		done:     make(chan struct{}),
	}
}

// Interval returns the duration between frames.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Frames returns the channel of frame deadlines.
func (t *Ticker) Frames() <-chan int64 {
	return t.frames
}

// Start begins emitting frame times until Stop is called. A tick that finds
// the consumer busy is dropped; frame deadlines are only meaningful when
// someone is waiting for them.
func (t *Ticker) Start() {
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case now := <-ticker.C:
				select {
				case t.frames <- now.UnixNano():
				default:
				}
			}
		}
	}()
}

// Stop halts the ticker. Safe to call once.
func (t *Ticker) Stop() {
	close(t.done)
}
