// Package sse implements the wire-format layer shared by every provider:
// an incremental Server-Sent-Events frame parser plus a stateful stream
// reader that reassembles frames split across arbitrary transport chunks.
package sse

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameType identifies the field prefix a wire record was classified by.
type FrameType string

const (
	// FrameEvent is an "event:" record carrying an event name.
	FrameEvent FrameType = "event"
	// FrameData is a "data:" record carrying an opaque payload.
	FrameData FrameType = "data"
	// FrameID is an "id:" record carrying a stream position marker.
	FrameID FrameType = "id"
	// FrameRetry is a "retry:" record carrying a reconnection delay.
	FrameRetry FrameType = "retry"
)

// Frame is one classified wire record. Value holds the record text for
// Event/Data/ID frames; Retry frames carry their delay in RetryAfter instead.
type Frame struct {
	Type       FrameType
	Value      string
	RetryAfter uint32
}

// Event returns an event-name frame.
func Event(value string) Frame { return Frame{Type: FrameEvent, Value: value} }

// Data returns a payload frame.
func Data(value string) Frame { return Frame{Type: FrameData, Value: value} }

// ID returns a stream position frame.
func ID(value string) Frame { return Frame{Type: FrameID, Value: value} }

// Retry returns a reconnection delay frame.
func Retry(after uint32) Frame { return Frame{Type: FrameRetry, RetryAfter: after} }

// ParseError reports a record that could not be classified by any known
// field prefix. Unlike IncompleteError it indicates genuinely malformed
// input rather than a chunk boundary splitting a record.
type ParseError struct {
	Record string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sse: unclassifiable record %q", e.Record)
}

// IncompleteError reports that a chunk ended mid-record. Remainder carries
// the entire original chunk so the caller can retry once more bytes arrive;
// any frames parsed before the cut are still returned alongside the error.
type IncompleteError struct {
	Remainder string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("sse: chunk ends mid-record (%d buffered bytes)", len(e.Remainder))
}

// eventDataSeparator marks providers that pack an event name and its data
// payload into a single blank-line-delimited record. Such records are split
// into an Event frame followed by a Data frame.
const eventDataSeparator = "\ndata: "

// ParseChunk parses a chunk of wire text into the ordered sequence of frames
// it fully contains.
//
// The record delimiter is detected per chunk: "\r\n\r\n" when the chunk
// contains that sequence anywhere, "\n\n" otherwise. Proxies are known to
// rewrite line endings mid-stream, so the choice is never cached.
//
// If the chunk does not end exactly on a delimiter the trailing record is
// incomplete: ParseChunk returns the frames found so far together with an
// *IncompleteError whose Remainder is the whole original chunk. A record
// that is properly terminated but matches no known prefix is a hard failure
// reported as *ParseError.
func ParseChunk(chunk string) ([]Frame, error) {
	delimiter := "\n\n"
	if strings.Contains(chunk, "\r\n\r\n") {
		delimiter = "\r\n\r\n"
	}

	records := strings.Split(chunk, delimiter)

	// The final split segment is empty iff the chunk ended on a delimiter.
	last := len(records) - 1
	incomplete := records[last] != ""

	var frames []Frame
	for i, record := range records {
		if record == "" {
			continue
		}
		if incomplete && i == last {
			// The unterminated tail is never classified; it may be an
			// arbitrary prefix of a valid record.
			break
		}

		parsed, ok := classifyRecord(record)
		if !ok {
			return nil, &ParseError{Record: record}
		}
		frames = append(frames, parsed...)
	}

	if incomplete {
		return frames, &IncompleteError{Remainder: chunk}
	}
	return frames, nil
}

// classifyRecord maps one delimiter-terminated record to its frames.
// It returns ok=false when no known prefix matches. A retry record with a
// non-integer value is dropped: ok=true with zero frames.
func classifyRecord(record string) ([]Frame, bool) {
	if value, found := trimPrefix(record, "data:"); found {
		return []Frame{Data(value)}, true
	}

	if value, found := trimPrefix(record, "event:"); found {
		// Some providers emit "event: <name>\ndata: <payload>" as one
		// record; surface it as two ordered frames, split at the first
		// separator occurrence only.
		if eventName, payload, packed := strings.Cut(value, eventDataSeparator); packed {
			return []Frame{Event(eventName), Data(payload)}, true
		}
		return []Frame{Event(value)}, true
	}

	if value, found := trimPrefix(record, "id:"); found {
		return []Frame{ID(value)}, true
	}

	if value, found := trimPrefix(record, "retry:"); found {
		after, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			// Non-integer retry values are dropped, not errors.
			return nil, true
		}
		return []Frame{Retry(uint32(after))}, true
	}

	return nil, false
}

// trimPrefix reports whether record starts with prefix and returns the
// record value with surrounding whitespace removed.
func trimPrefix(record, prefix string) (string, bool) {
	if !strings.HasPrefix(record, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(record, prefix)), true
}
