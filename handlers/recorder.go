package handlers

import (
	"context"
	"strings"
)

// Recorder accumulates fragments into a single string. The zero value is
// ready to use. It is not safe for concurrent use; give each stream its own
// Recorder.
type Recorder struct {
	builder strings.Builder
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// HandleMut implements [ai.MutHandler].
func (r *Recorder) HandleMut(_ context.Context, fragment string) error {
	r.builder.WriteString(fragment)
	return nil
}

// String returns the accumulated text without resetting the recorder.
func (r *Recorder) String() string {
	return r.builder.String()
}

// Take returns the accumulated text and resets the recorder for reuse.
func (r *Recorder) Take() string {
	content := r.builder.String()
	r.builder.Reset()
	return content
}
