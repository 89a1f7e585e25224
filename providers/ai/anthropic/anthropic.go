package anthropic

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
	// defaultBaseURL is the canonical base URL for Anthropic's Messages API.
	defaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"

	// defaultMaxTokens caps the response length when the caller does not care.
	defaultMaxTokens = 1024
)

// Model identifiers accepted by the Messages API.
const (
	ModelClaude35Sonnet = "claude-3-5-sonnet-20240620"
	ModelClaude3Opus    = "claude-3-opus-20240229"
	ModelClaude3Sonnet  = "claude-3-sonnet-20240229"
	ModelClaude3Haiku   = "claude-3-haiku-20240307"
)

// AnthropicProvider implements [ai.Provider] for Anthropic's Messages API.
// Use [New] to construct a ready-to-use instance.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New returns an [AnthropicProvider] for the given model, initialized from
// environment variables. It reads CLAUDE_API_KEY for authentication and
// ANTHROPIC_API_BASE_URL for the endpoint base (defaulting to
// https://api.anthropic.com/v1 when unset). Use [AnthropicProvider.WithAPIKey]
// and [AnthropicProvider.WithBaseURL] to override these values after construction.
func New(model string) *AnthropicProvider {
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = ModelClaude35Sonnet
	}

	return &AnthropicProvider{
		apiKey:  os.Getenv("CLAUDE_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key used for authenticating requests and returns the
// provider so calls can be chained. It overrides the value read from CLAUDE_API_KEY.
func (p *AnthropicProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL and returns the provider so calls can
// be chained. Use this when targeting a proxy or local testing endpoint.
func (p *AnthropicProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the default [http.Client] used for API calls and
// returns the provider so calls can be chained. Useful for injecting custom
// timeouts, transport layers, or test doubles.
func (p *AnthropicProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// buildHeaders constructs the HTTP headers required for every Anthropic request.
// x-api-key carries the credential (Anthropic does not use Bearer tokens) and
// anthropic-version pins the wire format.
func (p *AnthropicProvider) buildHeaders() []utils.HeaderOption {
	return []utils.HeaderOption{
		{Key: "x-api-key", Value: p.apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
}

// Request implements [ai.Provider] by streaming the response for prompt into
// a read-only handler.
func (p *AnthropicProvider) Request(ctx context.Context, prompt ai.Prompt, handler ai.Handler) error {
	response, err := p.openStream(ctx, prompt)
	if err != nil {
		return err
	}
	defer utils.CloseWithLog(response.Body)

	return ai.RunStream(ctx, response.Body, frameDecoder{}, handler)
}

// RequestMut implements [ai.Provider] by streaming the response for prompt
// into a stateful handler.
func (p *AnthropicProvider) RequestMut(ctx context.Context, prompt ai.Prompt, handler ai.MutHandler) error {
	response, err := p.openStream(ctx, prompt)
	if err != nil {
		return err
	}
	defer utils.CloseWithLog(response.Body)

	return ai.RunStreamMut(ctx, response.Body, frameDecoder{}, handler)
}

// openStream sends the streaming request and returns the open response body.
// Pre-stream errors (missing API key, non-2xx HTTP response, network failure)
// are returned immediately; mid-stream failures surface from the orchestrator.
func (p *AnthropicProvider) openStream(ctx context.Context, prompt ai.Prompt) (*http.Response, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, "anthropic"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
		)
	}

	if observer != nil {
		observer.Debug(ctx, "Anthropic provider preparing streaming request",
			observability.String(observability.AttrLLMProvider, "anthropic"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
			observability.Int(observability.AttrRequestMessagesCount, len(prompt.Messages())),
		)
	}

	// Guard against missing credentials before making a network call.
	if p.apiKey == "" {
		return nil, fmt.Errorf("CLAUDE_API_KEY is not set")
	}

	streamURL := p.baseURL + messagesEndpoint

	// Pass empty apiKey so DoPostStream does not inject a Bearer token;
	// Anthropic authenticates via x-api-key (set inside buildHeaders).
	response, err := utils.DoPostStream(ctx, p.client, streamURL, "", newMessageRequest(p.model, prompt), p.buildHeaders()...)
	if err != nil {
		if observer != nil {
			observer.Debug(ctx, "Streaming HTTP request failed", observability.Error(err))
		}
		return nil, err
	}

	return response, nil
}
