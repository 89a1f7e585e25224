package sse

import (
	"errors"
	"fmt"
)

// ErrReassemblyLimit is returned by StreamReader.Feed when a single record
// stays incomplete across more consecutive chunks than the configured bound
// allows. It guards against a misbehaving or non-delimited transport keeping
// the reader buffering forever.
var ErrReassemblyLimit = errors.New("sse: reassembly limit exceeded")

// defaultMaxReassemblies bounds how many consecutive chunks one record may
// span before the stream is failed.
const defaultMaxReassemblies = 25

// StreamReader reassembles frames from a stream of arbitrarily fragmented
// chunks. When a chunk ends mid-record the unterminated tail is buffered and
// prepended to the next chunk, so frame boundaries never depend on how the
// transport happened to split the bytes.
//
// The guarantee enforced by the bound is: no single record may span more
// than MaxReassemblies consecutive chunks. Memory growth is bounded
// transitively, since each attempt buffers at most the tail plus one chunk.
//
// A StreamReader belongs to exactly one streaming request and is not safe
// for concurrent use.
type StreamReader struct {
	tail     string
	hasTail  bool
	attempts int

	maxReassemblies int
}

// ReaderOption customises a StreamReader.
type ReaderOption func(*StreamReader)

// WithMaxReassemblies overrides the bound on how many consecutive chunks a
// single record may span. Values below 1 are ignored.
func WithMaxReassemblies(limit int) ReaderOption {
	return func(r *StreamReader) {
		if limit >= 1 {
			r.maxReassemblies = limit
		}
	}
}

// NewStreamReader returns a StreamReader ready to consume the first chunk of
// a stream.
func NewStreamReader(opts ...ReaderOption) *StreamReader {
	reader := &StreamReader{maxReassemblies: defaultMaxReassemblies}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Feed consumes the next transport chunk and returns every frame that is now
// fully reassembled, in wire order.
//
// When the (possibly tail-prefixed) text still ends mid-record, Feed buffers
// it and returns no frames; the caller must supply more bytes before frames
// appear. A record that exceeds the reassembly bound fails the stream with
// ErrReassemblyLimit, and an unclassifiable record fails it with *ParseError.
// Both failures are terminal: the reader must not be fed again.
func (r *StreamReader) Feed(chunk string) ([]Frame, error) {
	text := chunk
	if r.hasTail {
		r.attempts++
		if r.attempts >= r.maxReassemblies {
			return nil, fmt.Errorf("%w: record still incomplete after %d chunks", ErrReassemblyLimit, r.attempts)
		}
		text = r.tail + chunk
		r.tail = ""
		r.hasTail = false
	}

	frames, err := ParseChunk(text)

	var incomplete *IncompleteError
	if errors.As(err, &incomplete) {
		// Buffer the whole text and yield nothing: emitting the partial
		// frame list here would deliver them again once the tail resolves.
		r.tail = incomplete.Remainder
		r.hasTail = true
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// A complete parse closes any record that was previously buffered.
	r.attempts = 0
	return frames, nil
}

// Buffered reports whether an unterminated record is currently buffered,
// and how many bytes of it have accumulated.
func (r *StreamReader) Buffered() (int, bool) {
	if !r.hasTail {
		return 0, false
	}
	return len(r.tail), true
}
