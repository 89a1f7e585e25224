package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/caigo-ai/caigo/internal/utils"
	"github.com/caigo-ai/caigo/providers/ai"
	"github.com/caigo-ai/caigo/providers/observability"
)

const (
	// defaultBaseURL is the canonical base URL for the OpenAI API.
	defaultBaseURL = "https://api.openai.com/v1"

	// chatCompletionsEndpoint is the path for the chat completions endpoint.
	chatCompletionsEndpoint = "/chat/completions"
)

// Model identifiers accepted by the chat completions endpoint.
const (
	ModelGPT4        = "gpt-4"
	ModelGPT4o       = "gpt-4o"
	ModelGPT4oMini   = "gpt-4o-mini"
	ModelGPT35Turbo  = "gpt-3.5-turbo"
	defaultModelName = ModelGPT4oMini
)

// OpenAIProvider implements [ai.Provider] for OpenAI's chat completions API.
// Use [New] to construct a ready-to-use instance.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New returns an [OpenAIProvider] for the given model, initialized from
// environment variables. It reads OPENAI_API_KEY for authentication and
// OPENAI_API_BASE_URL for the endpoint base. An empty model selects
// gpt-4o-mini.
func New(model string) *OpenAIProvider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModelName
	}

	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key used for authenticating requests and returns the
// provider so calls can be chained. It overrides the value read from OPENAI_API_KEY.
func (p *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL and returns the provider so calls can
// be chained.
func (p *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the default [http.Client] used for API calls and
// returns the provider so calls can be chained.
func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// Request implements [ai.Provider] by streaming the response for prompt into
// a read-only handler.
func (p *OpenAIProvider) Request(ctx context.Context, prompt ai.Prompt, handler ai.Handler) error {
	response, err := p.openStream(ctx, prompt)
	if err != nil {
		return err
	}
	defer utils.CloseWithLog(response.Body)

	return ai.RunStream(ctx, response.Body, frameDecoder{}, handler)
}

// RequestMut implements [ai.Provider] by streaming the response for prompt
// into a stateful handler.
func (p *OpenAIProvider) RequestMut(ctx context.Context, prompt ai.Prompt, handler ai.MutHandler) error {
	response, err := p.openStream(ctx, prompt)
	if err != nil {
		return err
	}
	defer utils.CloseWithLog(response.Body)

	return ai.RunStreamMut(ctx, response.Body, frameDecoder{}, handler)
}

// openStream sends the streaming request and returns the open response body.
func (p *OpenAIProvider) openStream(ctx context.Context, prompt ai.Prompt) (*http.Response, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, "openai"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
		)
	}

	if observer != nil {
		observer.Debug(ctx, "OpenAI provider preparing streaming request",
			observability.String(observability.AttrLLMProvider, "openai"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
			observability.Int(observability.AttrRequestMessagesCount, len(prompt.Messages())),
		)
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	streamURL := p.baseURL + chatCompletionsEndpoint

	response, err := utils.DoPostStream(ctx, p.client, streamURL, p.apiKey, newChatRequest(p.model, prompt))
	if err != nil {
		if observer != nil {
			observer.Debug(ctx, "Streaming HTTP request failed", observability.Error(err))
		}
		return nil, err
	}

	return response, nil
}
