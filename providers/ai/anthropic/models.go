package anthropic

import (
	"encoding/json"

	"github.com/caigo-ai/caigo/internal/sse"
	"github.com/caigo-ai/caigo/providers/ai"
)

// messageRequest is the Messages API request body. Streaming is always
// enabled; this client only consumes the SSE shape of the endpoint.
type messageRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	Messages  []requestMessage `json:"messages"`
	Stream    bool             `json:"stream"`
}

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func newMessageRequest(model string, prompt ai.Prompt) messageRequest {
	messages := make([]requestMessage, 0, len(prompt.Messages()))
	for _, message := range prompt.Messages() {
		messages = append(messages, requestMessage{
			Role:    roleToAnthropic(message.Role),
			Content: message.Content,
		})
	}
	return messageRequest{
		Model:     model,
		MaxTokens: defaultMaxTokens,
		Messages:  messages,
		Stream:    true,
	}
}

// roleToAnthropic maps generic roles onto the two roles the Messages API
// accepts. Role-play framing is sent as a user turn; the API has no system
// role inside the messages list.
func roleToAnthropic(role ai.Role) string {
	if role == ai.RoleAI {
		return "assistant"
	}
	return "user"
}

/*
	ANTHROPIC SSE STREAMING - WIRE SHAPE

	Anthropic emits "event: <type>" records followed by "data: <json>"
	records. Only content_block_delta payloads carry response text:

	  {"type":"content_block_delta","index":0,
	   "delta":{"type":"text_delta","text":"Hi"}}

	Lifecycle events (message_start, ping, content_block_stop, ...) use
	different payload shapes without delta.text and are skipped. The stream
	has no explicit done sentinel; it ends when the transport closes.
*/

// streamPayload is the subset of the content_block_delta payload this client
// extracts. Delta and its Text field are pointers so payloads of other event
// types, which lack them, are recognisably incomplete rather than
// indistinguishable from empty text.
type streamPayload struct {
	Type  string       `json:"type"`
	Index int          `json:"index"`
	Delta *streamDelta `json:"delta"`
}

type streamDelta struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}

// frameDecoder implements [ai.FrameDecoder] for the Messages API SSE stream.
type frameDecoder struct{}

// DecodeFrame extracts the text delta from a content_block_delta payload.
// Non-data frames and payloads without a delta.text field (lifecycle events,
// heartbeats, malformed JSON) are skipped.
func (frameDecoder) DecodeFrame(frame sse.Frame) ai.Delta {
	if frame.Type != sse.FrameData {
		return ai.Skip()
	}

	var payload streamPayload
	if err := json.Unmarshal([]byte(frame.Value), &payload); err != nil {
		return ai.Skip()
	}
	if payload.Delta == nil || payload.Delta.Text == nil {
		return ai.Skip()
	}

	return ai.Text(*payload.Delta.Text)
}
