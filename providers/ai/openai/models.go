package openai

import (
	"encoding/json"
	"strings"

	"github.com/caigo-ai/caigo/internal/sse"
	"github.com/caigo-ai/caigo/providers/ai"
)

// chatRequest is the chat completions request body. Streaming is always
// enabled; this client only consumes the SSE shape of the endpoint.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func newChatRequest(model string, prompt ai.Prompt) chatRequest {
	messages := make([]chatMessage, 0, len(prompt.Messages()))
	for _, message := range prompt.Messages() {
		messages = append(messages, chatMessage{
			Role:    roleToOpenAI(message.Role),
			Content: message.Content,
		})
	}
	return chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	}
}

// roleToOpenAI maps generic roles onto chat completion roles. Role-play
// framing becomes a system message.
func roleToOpenAI(role ai.Role) string {
	switch role {
	case ai.RoleAI:
		return "assistant"
	case ai.RoleRolePlay:
		return "system"
	default:
		return "user"
	}
}

// doneSentinel is the literal payload OpenAI sends as the final data record
// of a stream. It is checked before JSON parsing; it is not JSON.
const doneSentinel = "[DONE]"

// streamChunk is the subset of a chat completion streaming chunk this client
// extracts.
type streamChunk struct {
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Index int         `json:"index"`
	Delta choiceDelta `json:"delta"`
}

type choiceDelta struct {
	Content *string `json:"content"`
}

// frameDecoder implements [ai.FrameDecoder] for the chat completions SSE stream.
type frameDecoder struct{}

// DecodeFrame turns one wire frame into a normalized delta. The [DONE]
// sentinel terminates the stream; otherwise the last choice's delta content
// is the fragment. A chunk without choices or without content (role-only
// first chunk, final usage chunk) yields an empty fragment to keep the
// stream flowing, and malformed JSON is skipped.
func (frameDecoder) DecodeFrame(frame sse.Frame) ai.Delta {
	if frame.Type != sse.FrameData {
		return ai.Skip()
	}

	if strings.HasPrefix(frame.Value, doneSentinel) {
		return ai.Done()
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(frame.Value), &chunk); err != nil {
		return ai.Skip()
	}

	if len(chunk.Choices) == 0 {
		return ai.Text("")
	}

	last := chunk.Choices[len(chunk.Choices)-1]
	if last.Delta.Content == nil {
		return ai.Text("")
	}
	return ai.Text(*last.Delta.Content)
}
