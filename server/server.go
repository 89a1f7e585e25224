// Package server exposes the engines over HTTP. Each request carries a
// prompt, is streamed through a provider into a recorder, and comes back as
// a single JSON result.
package server

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/caigo-ai/caigo/handlers"
	"github.com/caigo-ai/caigo/providers/ai"
	"github.com/caigo-ai/caigo/providers/ai/gai"
)

// Config holds server settings.
type Config struct {
	ListenAddr string
}

// ProviderFactory resolves an engine name to a provider. The default is
// [gai.NewProvider].
type ProviderFactory func(engine string) (ai.Provider, error)

// Server hosts the ask endpoints.
type Server struct {
	config      Config
	logger      *slog.Logger
	app         *fiber.App
	newProvider ProviderFactory
}

// AskRequest is the body accepted by every ask endpoint.
type AskRequest struct {
	Prompt string `json:"prompt"`
	// Engine selects the model on the generic route. Ignored on
	// engine-specific routes.
	Engine string `json:"engine,omitempty"`
}

// AskResponse carries the full accumulated answer.
type AskResponse struct {
	Result string `json:"result"`
}

// ErrorResponse is the body returned on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates the HTTP server. A nil factory uses [gai.NewProvider]
// and a nil logger uses [slog.Default].
func NewServer(config Config, factory ProviderFactory, logger *slog.Logger) *Server {
	if factory == nil {
		factory = gai.NewProvider
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:      config,
		logger:      logger,
		app:         app,
		newProvider: factory,
	}

	app.Post("/", s.handleAsk(""))
	app.Post("/gpt4o-mini", s.handleAsk(gai.EngineGPT4oMini))
	app.Post("/gemini", s.handleAsk(gai.EngineGemini15Flash))
	app.Post("/claude", s.handleAsk(gai.EngineClaude35Sonnet))
	app.Get("/ping", s.handlePing)

	return s
}

// Run starts the server on the configured address and blocks until shutdown.
func (s *Server) Run() error {
	s.logger.Info("starting server", "listen", s.config.ListenAddr)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully stops the server, letting in-flight requests finish.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleAsk returns a handler bound to a fixed engine. An empty engine lets
// the request body pick one, falling back to the default engine.
func (s *Server) handleAsk(engine string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()

		var req AskRequest
		if err := c.BodyParser(&req); err != nil {
			s.logger.Warn("rejecting malformed request body", "request_id", requestID, "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid JSON body"})
		}
		if strings.TrimSpace(req.Prompt) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "prompt is required"})
		}

		selected := engine
		if selected == "" {
			selected = req.Engine
		}

		provider, err := s.newProvider(selected)
		if err != nil {
			s.logger.Warn("engine resolution failed", "request_id", requestID, "engine", selected, "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}

		s.logger.Info("dispatching prompt", "request_id", requestID, "engine", selected, "prompt_bytes", len(req.Prompt))

		recorder := handlers.NewRecorder()
		if err := provider.RequestMut(c.Context(), ai.Ask(req.Prompt), recorder); err != nil {
			s.logger.Error("provider request failed", "request_id", requestID, "engine", selected, "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "upstream request failed"})
		}

		return c.JSON(AskResponse{Result: recorder.Take()})
	}
}
