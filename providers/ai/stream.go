package ai

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/caigo-ai/caigo/internal/sse"
	"github.com/caigo-ai/caigo/providers/observability"
)

// streamReadSize is the transport read buffer size. Chunks handed to the
// reassembler are at most this large, but may be any size down to one byte
// depending on how the network fragments the response.
const streamReadSize = 4096

// RunStream drives one complete streaming pass: it reads transport chunks
// from body, reassembles wire frames, decodes each frame through decoder and
// delivers every text delta to handler.
//
// The pass ends normally when the transport stream ends or when the decoder
// yields an explicit termination signal (that frame is not delivered). Hard
// parse failures, reassembly-limit breaches, transport errors and handler
// errors all end the pass immediately with an error; there is no resumption
// and no automatic retry at this layer.
func RunStream(ctx context.Context, body io.Reader, decoder FrameDecoder, handler Handler) error {
	return runStream(ctx, body, decoder, handler.Handle)
}

// RunStreamMut is RunStream for stateful sinks.
func RunStreamMut(ctx context.Context, body io.Reader, decoder FrameDecoder, handler MutHandler) error {
	return runStream(ctx, body, decoder, handler.HandleMut)
}

func runStream(ctx context.Context, body io.Reader, decoder FrameDecoder, deliver func(context.Context, string) error) error {
	observer := observability.ObserverFromContext(ctx)
	span := observability.SpanFromContext(ctx)

	reader := sse.NewStreamReader()
	buf := make([]byte, streamReadSize)

	// Bytes of a multi-byte rune cut off by the previous read. A network
	// chunk boundary can land inside a UTF-8 sequence; those trailing bytes
	// are held back and prepended to the next read so the text handed to the
	// reassembler is always valid UTF-8.
	var pendingRune []byte

	deltasDelivered := 0

	for {
		// Respect context cancellation between transport reads.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, readErr := body.Read(buf)

		if n > 0 {
			data := buf[:n]
			if len(pendingRune) > 0 {
				data = append(pendingRune, data...)
				pendingRune = nil
			}

			complete, rest := splitTrailingRune(data)
			if !utf8.Valid(complete) {
				return fmt.Errorf("stream is not valid UTF-8")
			}
			// Copy: rest aliases the read buffer, which the next read reuses.
			pendingRune = append([]byte(nil), rest...)

			chunk := string(complete)

			frames, err := reader.Feed(chunk)
			if err != nil {
				return fmt.Errorf("failed to reassemble stream: %w", err)
			}

			if observer != nil {
				observer.Trace(ctx, "sse chunk received",
					observability.Int(observability.AttrStreamChunkBytes, len(chunk)),
					observability.Int(observability.AttrStreamFrames, len(frames)),
				)
			}

			for _, frame := range frames {
				delta := decoder.DecodeFrame(frame)

				switch delta.Kind {
				case DeltaDone:
					// Explicit vendor termination: the sink never sees this
					// frame and no further transport reads happen.
					if span != nil {
						span.AddEvent(observability.EventStreamTerminated,
							observability.Int(observability.AttrStreamDeltas, deltasDelivered),
						)
					}
					return nil

				case DeltaText:
					if err := deliver(ctx, delta.Text); err != nil {
						return fmt.Errorf("handler failed: %w", err)
					}
					deltasDelivered++
				}
			}
		}

		if readErr == io.EOF {
			if len(pendingRune) > 0 {
				// The transport closed mid-rune; the held-back bytes can
				// never become valid text.
				return fmt.Errorf("stream is not valid UTF-8")
			}
			if observer != nil {
				observer.Debug(ctx, "stream ended",
					observability.Int(observability.AttrStreamDeltas, deltasDelivered),
				)
			}
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("failed to read stream: %w", readErr)
		}
	}
}

// splitTrailingRune splits data into a prefix safe to decode as text and the
// trailing bytes of an incomplete UTF-8 sequence, if the final rune was cut
// off. Invalid sequences are left in the prefix for utf8.Valid to reject.
func splitTrailingRune(data []byte) (complete, rest []byte) {
	// Find the start byte of the final rune; it is at most UTFMax-1 bytes
	// from the end, otherwise the tail is plain invalid.
	for back := 1; back <= utf8.UTFMax && back <= len(data); back++ {
		b := data[len(data)-back]
		if utf8.RuneStart(b) {
			start := len(data) - back
			if utf8.FullRune(data[start:]) {
				return data, nil
			}
			return data[:start], data[start:]
		}
	}
	return data, nil
}
