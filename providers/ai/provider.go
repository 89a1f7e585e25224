package ai

import (
	"context"
	"net/http"
)

// Handler is the read-only sink capability: it receives each normalized text
// fragment of a stream and performs a side effect (display, forwarding). A
// non-nil error aborts the whole streaming request immediately.
type Handler interface {
	Handle(ctx context.Context, fragment string) error
}

// MutHandler is the stateful sink capability: it receives each fragment and
// may mutate internal state (e.g. append to an accumulated transcript that
// the owner retrieves later). A non-nil error aborts the request immediately.
type MutHandler interface {
	HandleMut(ctx context.Context, fragment string) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, fragment string) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, fragment string) error {
	return f(ctx, fragment)
}

// Provider is the capability interface every vendor client implements: it
// sends one prompt and streams the normalized response into the given sink,
// returning once the stream ends, is terminated by the vendor, or fails.
//
// Request and RequestMut differ only in the sink capability they accept.
// Both block until the pass completes; backpressure is implicit because the
// next transport chunk is requested only after the sink has accepted every
// delta from the previous one.
type Provider interface {
	// Request streams the response for prompt into a read-only handler.
	Request(ctx context.Context, prompt Prompt, handler Handler) error

	// RequestMut streams the response for prompt into a stateful handler.
	RequestMut(ctx context.Context, prompt Prompt, handler MutHandler) error

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}
