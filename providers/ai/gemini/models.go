package gemini

import (
	"encoding/json"

	"github.com/caigo-ai/caigo/internal/sse"
	"github.com/caigo-ai/caigo/providers/ai"
)

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func newGenerateContentRequest(prompt ai.Prompt) generateContentRequest {
	messages := prompt.Messages()
	contents := make([]content, 0, len(messages))
	for _, message := range messages {
		contents = append(contents, content{
			Role:  roleToGemini(message.Role),
			Parts: []part{{Text: message.Content}},
		})
	}

	return generateContentRequest{Contents: contents}
}

// roleToGemini maps conversation roles onto the two roles the Gemini API
// accepts. Role-play instructions go through as user turns, matching how the
// API treats system-style content in the contents list.
func roleToGemini(role ai.Role) string {
	if role == ai.RoleAI {
		return "model"
	}
	return "user"
}

// streamChunk mirrors one SSE data payload from streamGenerateContent.
// Only the candidate text path is decoded; usage metadata and safety
// ratings are ignored.
type streamChunk struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content candidateContent `json:"content"`
}

type candidateContent struct {
	Parts []part `json:"parts"`
}

// frameDecoder extracts text fragments from Gemini streaming frames. The
// stream terminates at EOF; there is no explicit done sentinel.
type frameDecoder struct{}

func (frameDecoder) DecodeFrame(frame sse.Frame) ai.Delta {
	if frame.Type != sse.FrameData {
		return ai.Skip()
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(frame.Value), &chunk); err != nil {
		return ai.Skip()
	}

	if len(chunk.Candidates) == 0 || len(chunk.Candidates[0].Content.Parts) == 0 {
		return ai.Text("")
	}

	return ai.Text(chunk.Candidates[0].Content.Parts[0].Text)
}
