package translator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/caigo-ai/caigo/providers/ai"
)

// fakeProvider answers every prompt by applying transform to the question
// text, or fails when failOn matches.
type fakeProvider struct {
	transform func(string) string
	failOn    string
}

func (p *fakeProvider) Request(ctx context.Context, prompt ai.Prompt, handler ai.Handler) error {
	return p.respond(ctx, prompt, handler.Handle)
}

func (p *fakeProvider) RequestMut(ctx context.Context, prompt ai.Prompt, handler ai.MutHandler) error {
	return p.respond(ctx, prompt, handler.HandleMut)
}

func (p *fakeProvider) respond(ctx context.Context, prompt ai.Prompt, deliver func(context.Context, string) error) error {
	question := prompt.Messages()[0].Content
	if p.failOn != "" && strings.Contains(question, p.failOn) {
		return errors.New("provider unavailable")
	}
	return deliver(ctx, p.transform(question))
}

func (p *fakeProvider) WithAPIKey(string) ai.Provider        { return p }
func (p *fakeProvider) WithBaseURL(string) ai.Provider       { return p }
func (p *fakeProvider) WithHttpClient(*http.Client) ai.Provider { return p }

// TestRequest_Prompts_SeparatesSource verifies the separator budget: with a
// limit of 2 the first two sentences merge and the third starts a new
// segment.
func TestRequest_Prompts_SeparatesSource(t *testing.T) {
	request := NewRequest("hello, world! Are you okay?", Japanese).
		SeparatePerLimit(2).
		Separators([]rune{',', '?', '!'})

	prompts := request.Prompts()

	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(prompts))
	}
	if want := translatePrompt("hello, world!", Japanese); prompts[0].Messages()[0] != want.Messages()[0] {
		t.Fatalf("unexpected first prompt: %q", prompts[0].Messages()[0].Content)
	}
	if want := translatePrompt("Are you okay?", Japanese); prompts[1].Messages()[0] != want.Messages()[0] {
		t.Fatalf("unexpected second prompt: %q", prompts[1].Messages()[0].Content)
	}
}

// TestRequest_Prompts_NoSeparators_SingleSegment verifies the whole source
// translates as one prompt when no separators are configured.
func TestRequest_Prompts_NoSeparators_SingleSegment(t *testing.T) {
	prompts := NewRequest("hello, world! Are you okay?", English).Prompts()

	if len(prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(prompts))
	}
	if !strings.Contains(prompts[0].Messages()[0].Content, "'hello, world! Are you okay?'") {
		t.Fatalf("prompt should quote the full source, got %q", prompts[0].Messages()[0].Content)
	}
}

// TestRequest_Prompts_DefaultLimit_SplitsEverySentence verifies the default
// budget of one separator per segment.
func TestRequest_Prompts_DefaultLimit_SplitsEverySentence(t *testing.T) {
	request := NewRequest("a. b. c.", English).Separators([]rune{'.'})

	if got := len(request.Prompts()); got != 3 {
		t.Fatalf("expected 3 prompts, got %d", got)
	}
}

// TestTranslate_JoinsSegmentsInOrder verifies concurrent segment requests
// come back joined in input order.
func TestTranslate_JoinsSegmentsInOrder(t *testing.T) {
	provider := &fakeProvider{transform: func(question string) string {
		start := strings.Index(question, "'")
		end := strings.LastIndex(question, "'")
		return strings.ToUpper(question[start+1 : end])
	}}

	request := NewRequest("one. two. three.", English).Separators([]rune{'.'})
	result, err := Translate(context.Background(), provider, request)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.Translated != "ONE. TWO. THREE." {
		t.Fatalf("expected \"ONE. TWO. THREE.\", got %q", result.Translated)
	}
}

// TestTranslate_SegmentFailure_FailsBatch verifies one failed segment fails
// the whole translation.
func TestTranslate_SegmentFailure_FailsBatch(t *testing.T) {
	provider := &fakeProvider{
		transform: func(question string) string { return question },
		failOn:    "two",
	}

	request := NewRequest("one. two. three.", English).Separators([]rune{'.'})
	if _, err := Translate(context.Background(), provider, request); err == nil {
		t.Fatal("expected batch failure when one segment errors")
	}
}
