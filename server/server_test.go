package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caigo-ai/caigo/providers/ai"
)

// stubProvider answers every prompt with a fixed fragment sequence, noting
// which engine produced it.
type stubProvider struct {
	engine string
	err    error
}

func (p *stubProvider) Request(ctx context.Context, _ ai.Prompt, handler ai.Handler) error {
	if p.err != nil {
		return p.err
	}
	return handler.Handle(ctx, "answer from "+p.engine)
}

func (p *stubProvider) RequestMut(ctx context.Context, _ ai.Prompt, handler ai.MutHandler) error {
	if p.err != nil {
		return p.err
	}
	for _, fragment := range []string{"answer ", "from ", p.engine} {
		if err := handler.HandleMut(ctx, fragment); err != nil {
			return err
		}
	}
	return nil
}

func (p *stubProvider) WithAPIKey(string) ai.Provider           { return p }
func (p *stubProvider) WithBaseURL(string) ai.Provider          { return p }
func (p *stubProvider) WithHttpClient(*http.Client) ai.Provider { return p }

func newTestServer(t *testing.T, factory ProviderFactory) *Server {
	t.Helper()
	return NewServer(Config{ListenAddr: ":0"}, factory, nil)
}

func postJSON(t *testing.T, s *Server, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	return resp
}

func decodeAsk(t *testing.T, resp *http.Response) AskResponse {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var out AskResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding response %q: %v", raw, err)
	}
	return out
}

// TestServer_AskRoot_UsesRequestedEngine verifies the generic route passes
// the body's engine through to the factory and returns the recorded answer.
func TestServer_AskRoot_UsesRequestedEngine(t *testing.T) {
	var requested string
	s := newTestServer(t, func(engine string) (ai.Provider, error) {
		requested = engine
		return &stubProvider{engine: engine}, nil
	})

	resp := postJSON(t, s, "/", AskRequest{Prompt: "hi", Engine: "gpt4o"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if requested != "gpt4o" {
		t.Fatalf("factory should receive the body engine, got %q", requested)
	}
	if got := decodeAsk(t, resp); got.Result != "answer from gpt4o" {
		t.Fatalf("unexpected result %q", got.Result)
	}
}

// TestServer_EngineRoutes_PinEngine verifies engine-specific routes ignore
// the body's engine field.
func TestServer_EngineRoutes_PinEngine(t *testing.T) {
	var requested string
	s := newTestServer(t, func(engine string) (ai.Provider, error) {
		requested = engine
		return &stubProvider{engine: engine}, nil
	})

	cases := map[string]string{
		"/gpt4o-mini": "gpt4o-mini",
		"/gemini":     "gemini15flash",
		"/claude":     "claude35-sonnet",
	}
	for path, wantEngine := range cases {
		resp := postJSON(t, s, path, AskRequest{Prompt: "hi", Engine: "gpt4"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		if requested != wantEngine {
			t.Fatalf("%s: expected engine %q, got %q", path, wantEngine, requested)
		}
	}
}

// TestServer_MissingPrompt_BadRequest verifies prompt validation.
func TestServer_MissingPrompt_BadRequest(t *testing.T) {
	s := newTestServer(t, func(engine string) (ai.Provider, error) {
		return &stubProvider{engine: engine}, nil
	})

	resp := postJSON(t, s, "/", AskRequest{Prompt: "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// TestServer_UnknownEngine_BadRequest verifies factory errors are surfaced
// as client errors.
func TestServer_UnknownEngine_BadRequest(t *testing.T) {
	s := newTestServer(t, func(engine string) (ai.Provider, error) {
		return nil, errors.New("unknown engine")
	})

	resp := postJSON(t, s, "/", AskRequest{Prompt: "hi", Engine: "bogus"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// TestServer_ProviderFailure_BadGateway verifies upstream failures map to
// 502 without leaking internals.
func TestServer_ProviderFailure_BadGateway(t *testing.T) {
	s := newTestServer(t, func(engine string) (ai.Provider, error) {
		return &stubProvider{err: errors.New("connection reset")}, nil
	})

	resp := postJSON(t, s, "/", AskRequest{Prompt: "hi"})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var out ErrorResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding error response %q: %v", raw, err)
	}
	if out.Error != "upstream request failed" {
		t.Fatalf("unexpected error message %q", out.Error)
	}
}

// TestServer_Ping verifies the health endpoint.
func TestServer_Ping(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
