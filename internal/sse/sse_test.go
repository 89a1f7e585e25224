package sse

import (
	"errors"
	"testing"
)

// assertFrames fails the test unless got matches want exactly, in order.
func assertFrames(t *testing.T, got, want []Frame) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d frames, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// ---- ParseChunk tests -------------------------------------------------------

// TestParseChunk_DataRecords verifies that blank-line-terminated data records
// are returned in wire order with the prefix and whitespace stripped.
func TestParseChunk_DataRecords_ReturnsInOrder(t *testing.T) {
	frames, err := ParseChunk("data: {\"id\":1}\n\ndata: {\"id\":2}\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Data(`{"id":1}`), Data(`{"id":2}`)})
}

// TestParseChunk_NoWhitespaceAfterPrefix verifies that "data:" immediately
// followed by the value is parsed the same as "data: " with a space.
func TestParseChunk_NoWhitespaceAfterPrefix_ParsesValue(t *testing.T) {
	frames, err := ParseChunk("data:{\"id\":1}\n\ndata:{\"id\":2}\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Data(`{"id":1}`), Data(`{"id":2}`)})
}

// TestParseChunk_AllRecordKinds verifies classification of event, data, id
// and retry records within one chunk.
func TestParseChunk_AllRecordKinds_Classified(t *testing.T) {
	frames, err := ParseChunk("event: message\n\ndata: hi\n\nid: 42\n\nretry: 3000\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Event("message"), Data("hi"), ID("42"), Retry(3000)})
}

// TestParseChunk_CRLFDelimiter verifies that a chunk containing "\r\n\r\n"
// is split on that delimiter for the entire chunk.
func TestParseChunk_CRLFDelimiter_SplitsRecords(t *testing.T) {
	frames, err := ParseChunk("data: {\"id\":1}\r\n\r\nevent: message\r\n\r\ndata: {\"id\":2}\r\n\r\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Data(`{"id":1}`), Event("message"), Data(`{"id":2}`)})
}

// TestParseChunk_CRLFWins verifies delimiter auto-detection: when both
// "\r\n\r\n" and "\n\n" occur, the CRLF pair is used for the whole chunk even
// though "\n\n" appears first inside a value.
func TestParseChunk_CRLFWins_OverLFInsideValue(t *testing.T) {
	frames, err := ParseChunk("data: a\n\nb\r\n\r\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Data("a\n\nb")})
}

// TestParseChunk_EventPackedWithData verifies the provider quirk where an
// event name and its payload arrive in one record: the record yields exactly
// two frames, Event then Data, split at the first "\ndata: " occurrence only.
func TestParseChunk_EventPackedWithData_YieldsTwoFrames(t *testing.T) {
	frames, err := ParseChunk("event: content_block_delta\ndata: hi\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Event("content_block_delta"), Data("hi")})
}

// TestParseChunk_EventPackedWithData_FirstOccurrenceOnly verifies that a
// second "\ndata: " occurrence stays inside the Data frame's text.
func TestParseChunk_EventPackedWithData_FirstOccurrenceOnly(t *testing.T) {
	frames, err := ParseChunk("event: delta\ndata: one\ndata: two\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Event("delta"), Data("one\ndata: two")})
}

// TestParseChunk_InvalidRetry verifies that a retry record whose value does
// not parse as a non-negative integer is dropped without an error.
func TestParseChunk_InvalidRetry_Dropped(t *testing.T) {
	frames, err := ParseChunk("retry: soon\n\ndata: hi\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Data("hi")})
}

// TestParseChunk_NegativeRetry verifies that a negative retry value is
// rejected by the integer parse and dropped.
func TestParseChunk_NegativeRetry_Dropped(t *testing.T) {
	frames, err := ParseChunk("retry: -5\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %v", frames)
	}
}

// TestParseChunk_UnclassifiableRecord verifies that a terminated record with
// an unknown prefix is a hard parse failure, not an incomplete marker.
func TestParseChunk_UnclassifiableRecord_HardFailure(t *testing.T) {
	_, err := ParseChunk("foo: bar\n\n")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Record != "foo: bar" {
		t.Errorf("expected record %q, got %q", "foo: bar", parseErr.Record)
	}
}

// TestParseChunk_TrailingPartialRecord verifies that a chunk ending
// mid-record returns the frames already found plus an *IncompleteError
// carrying the entire original chunk.
func TestParseChunk_TrailingPartialRecord_ReturnsIncomplete(t *testing.T) {
	chunk := "data: {\"id\":1}\n\ndata:"
	frames, err := ParseChunk(chunk)

	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteError, got %v", err)
	}
	if incomplete.Remainder != chunk {
		t.Errorf("expected remainder to be full chunk %q, got %q", chunk, incomplete.Remainder)
	}
	assertFrames(t, frames, []Frame{Data(`{"id":1}`)})
}

// TestParseChunk_SingleUndelimitedRecord verifies that text with no
// delimiter at all is reported incomplete with the whole chunk buffered.
func TestParseChunk_SingleUndelimitedRecord_ReturnsIncomplete(t *testing.T) {
	frames, err := ParseChunk("data: partial")

	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteError, got %v", err)
	}
	if incomplete.Remainder != "data: partial" {
		t.Errorf("expected remainder %q, got %q", "data: partial", incomplete.Remainder)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %v", frames)
	}
}

// TestParseChunk_UnclassifiableTail verifies that an unterminated tail is
// never classified, even when its bytes could not begin any known prefix.
// Only more bytes can tell fragmentation apart from malformation here.
func TestParseChunk_UnclassifiableTail_ReportsIncomplete(t *testing.T) {
	_, err := ParseChunk("data: ok\n\nd")

	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteError, got %v", err)
	}
}

// TestParseChunk_ExactDelimiterBoundary verifies that a chunk ending exactly
// on a delimiter parses cleanly with nothing left over.
func TestParseChunk_ExactDelimiterBoundary_NoError(t *testing.T) {
	frames, err := ParseChunk("data: done\n\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	assertFrames(t, frames, []Frame{Data("done")})
}

// TestParseChunk_EmptyChunk verifies that an empty chunk yields no frames
// and no error.
func TestParseChunk_EmptyChunk_NoFramesNoError(t *testing.T) {
	frames, err := ParseChunk("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %v", frames)
	}
}
