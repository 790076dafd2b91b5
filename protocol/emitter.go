package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Emitter serializes events to the output channel, one JSON object per
// line, flushed after every write. It is safe for concurrent use: the
// dispatcher goroutine and the batch worker both emit, and interleaved
// partial lines would corrupt the protocol stream.
type Emitter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: bufio.NewWriter(w)}
}

// Emit writes one event as a single JSON line and flushes immediately.
// Non-ASCII characters (the emoji themselves) are written verbatim.
func (e *Emitter) Emit(event any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	enc := json.NewEncoder(e.w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(event); err != nil {
		return fmt.Errorf("protocol: encode event: %w", err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("protocol: flush event: %w", err)
	}
	return nil
}
