package ai

import "github.com/caigo-ai/caigo/internal/sse"

// DeltaKind identifies what a decoded frame means to the consumer.
type DeltaKind int

const (
	// DeltaSkip marks a frame that carries nothing for the consumer:
	// non-data frames, heartbeats, lifecycle events, undecodable payloads.
	DeltaSkip DeltaKind = iota
	// DeltaText marks an incremental text fragment. The text may be empty
	// when the vendor sent a payload without content; empty fragments are
	// still delivered so sinks observe every payload-bearing frame.
	DeltaText
	// DeltaDone marks an explicit end-of-stream signal from the vendor,
	// distinct from the transport simply closing.
	DeltaDone
)

// Delta is the normalized outcome of decoding one wire frame.
type Delta struct {
	Kind DeltaKind
	Text string
}

// Skip returns a delta that the orchestrator drops.
func Skip() Delta { return Delta{Kind: DeltaSkip} }

// Text returns a text-fragment delta.
func Text(text string) Delta { return Delta{Kind: DeltaText, Text: text} }

// Done returns an explicit termination delta.
func Done() Delta { return Delta{Kind: DeltaDone} }

// FrameDecoder turns one wire frame into a normalized delta. Implementations
// are per-vendor and must be pure with respect to frame content: identical
// frames always decode to identical deltas. Decode failures on individual
// frames are expressed as DeltaSkip, never as stream errors; providers
// routinely interleave heartbeats and unrelated message types.
type FrameDecoder interface {
	DecodeFrame(frame sse.Frame) Delta
}
