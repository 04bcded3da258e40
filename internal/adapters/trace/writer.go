package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a11ykit/touchpipe/internal/domain"
)

// Writer appends event records to a JSONL stream. It implements
// ports.EventInjector, which makes it the terminal sink for replay runs:
// everything the pipeline delivers lands in the output as one line.
type Writer struct {
	w       *bufio.Writer
	encoder *json.Encoder
	written int
}

// NewWriter creates a recording writer on top of w.
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	return &Writer{w: bw, encoder: json.NewEncoder(bw)}
}

// SendInputEvent records one delivered event. Implements ports.EventInjector.
func (t *Writer) SendInputEvent(event *domain.MotionEvent, policyFlags domain.PolicyFlags) {
	// Encode never fails for EventRecord; an underlying write error
	// surfaces on Flush.
	_ = t.encoder.Encode(domain.ToRecord(event, policyFlags))
	t.written++
}

// Written returns the number of events recorded so far.
func (t *Writer) Written() int {
	return t.written
}

// Flush drains buffered records to the underlying writer.
func (t *Writer) Flush() error {
	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("flush recording: %w", err)
	}
	return nil
}
