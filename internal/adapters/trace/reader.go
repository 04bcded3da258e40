// Package trace reads and writes touch-event recordings: one JSON event
// record per line. Recordings feed the replay command and capture what the
// pipeline delivered.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/a11ykit/touchpipe/internal/domain"
)

// Reader reads raw events from a JSONL recording.
type Reader struct {
	closer  io.Closer
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a reader on top of an arbitrary stream, e.g. stdin.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Reader{scanner: scanner}
}

// Open opens a recording file for reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// Next returns the next recorded event. io.EOF signals the end of the
// recording. Blank lines are skipped.
func (r *Reader) Next() (*domain.MotionEvent, domain.PolicyFlags, error) {
	for r.scanner.Scan() {
		r.line++
		raw := r.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec domain.EventRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, 0, fmt.Errorf("recording line %d: %w", r.line, err)
		}
		event, flags, err := rec.ToEvent()
		if err != nil {
			return nil, 0, fmt.Errorf("recording line %d: %w", r.line, err)
		}
		return event, flags, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read recording: %w", err)
	}
	return nil, 0, io.EOF
}

// Close closes the underlying file, when there is one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
