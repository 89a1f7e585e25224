package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/caigo-ai/caigo/internal/utils"
	"github.com/caigo-ai/caigo/providers/ai"
	"github.com/caigo-ai/caigo/providers/observability"
)

// defaultBaseURL is the canonical base URL for the Gemini generative
// language API.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Model identifiers accepted by the streamGenerateContent endpoint.
const (
	ModelGemini15Flash   = "gemini-1.5-flash"
	ModelGemini2FlashExp = "gemini-2.0-flash-exp"
)

// GeminiProvider implements [ai.Provider] for Google's Gemini API.
// Use [New] to construct a ready-to-use instance.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New returns a [GeminiProvider] for the given model, initialized from
// environment variables. It reads GEMINI_API_KEY for authentication and
// GEMINI_API_BASE_URL for the endpoint base. An empty model selects
// gemini-1.5-flash.
func New(model string) *GeminiProvider {
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = ModelGemini15Flash
	}

	return &GeminiProvider{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key used for authenticating requests and returns the
// provider so calls can be chained. It overrides the value read from GEMINI_API_KEY.
func (p *GeminiProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL and returns the provider so calls can
// be chained.
func (p *GeminiProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the default [http.Client] used for API calls and
// returns the provider so calls can be chained.
func (p *GeminiProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// Request implements [ai.Provider] by streaming the response for prompt into
// a read-only handler.
func (p *GeminiProvider) Request(ctx context.Context, prompt ai.Prompt, handler ai.Handler) error {
	response, err := p.openStream(ctx, prompt)
	if err != nil {
		return err
	}
	defer utils.CloseWithLog(response.Body)

	return ai.RunStream(ctx, response.Body, frameDecoder{}, handler)
}

// RequestMut implements [ai.Provider] by streaming the response for prompt
// into a stateful handler.
func (p *GeminiProvider) RequestMut(ctx context.Context, prompt ai.Prompt, handler ai.MutHandler) error {
	response, err := p.openStream(ctx, prompt)
	if err != nil {
		return err
	}
	defer utils.CloseWithLog(response.Body)

	return ai.RunStreamMut(ctx, response.Body, frameDecoder{}, handler)
}

// openStream sends the streaming request and returns the open response body.
// The alt=sse query parameter switches the endpoint from chunked JSON arrays
// to SSE framing.
func (p *GeminiProvider) openStream(ctx context.Context, prompt ai.Prompt) (*http.Response, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, "gemini"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
		)
	}

	if observer != nil {
		observer.Debug(ctx, "Gemini provider preparing streaming request",
			observability.String(observability.AttrLLMProvider, "gemini"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
			observability.Int(observability.AttrRequestMessagesCount, len(prompt.Messages())),
		)
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	streamURL := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.baseURL, p.model)

	// Pass empty apiKey so DoPostStream does not inject a Bearer token;
	// Gemini authenticates via the x-goog-api-key header.
	response, err := utils.DoPostStream(
		ctx,
		p.client,
		streamURL,
		"",
		newGenerateContentRequest(prompt),
		utils.HeaderOption{Key: "x-goog-api-key", Value: p.apiKey},
	)
	if err != nil {
		if observer != nil {
			observer.Debug(ctx, "Streaming HTTP request failed", observability.Error(err))
		}
		return nil, err
	}

	return response, nil
}
