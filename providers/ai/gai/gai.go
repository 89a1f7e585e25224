// Package gai resolves engine names to configured providers. It is the
// single place where the rest of the codebase chooses between vendors, so
// callers deal only in engine identifiers and the [ai.Provider] interface.
package gai

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/caigo-ai/caigo/providers/ai"
	"github.com/caigo-ai/caigo/providers/ai/anthropic"
	"github.com/caigo-ai/caigo/providers/ai/gemini"
	"github.com/caigo-ai/caigo/providers/ai/openai"
)

// Engine names accepted by [NewProvider].
const (
	EngineGPT4o          = "gpt4o"
	EngineGPT4oMini      = "gpt4o-mini"
	EngineGPT4           = "gpt4"
	EngineGPT35Turbo     = "gpt3-5-turbo"
	EngineClaude35Sonnet = "claude35-sonnet"
	EngineClaude3Haiku   = "claude3-haiku"
	EngineClaude3Opus    = "claude3-opus"
	EngineClaude3Sonnet  = "claude3-sonnet"
	EngineGemini15Flash  = "gemini15flash"
	EngineGemini2Flash   = "gemini2flash"
)

// DefaultEngine is used when the caller leaves the engine unspecified.
const DefaultEngine = EngineGPT4oMini

var engineFactories = map[string]func() ai.Provider{
	EngineGPT4o:          func() ai.Provider { return openai.New(openai.ModelGPT4o) },
	EngineGPT4oMini:      func() ai.Provider { return openai.New(openai.ModelGPT4oMini) },
	EngineGPT4:           func() ai.Provider { return openai.New(openai.ModelGPT4) },
	EngineGPT35Turbo:     func() ai.Provider { return openai.New(openai.ModelGPT35Turbo) },
	EngineClaude35Sonnet: func() ai.Provider { return anthropic.New(anthropic.ModelClaude35Sonnet) },
	EngineClaude3Haiku:   func() ai.Provider { return anthropic.New(anthropic.ModelClaude3Haiku) },
	EngineClaude3Opus:    func() ai.Provider { return anthropic.New(anthropic.ModelClaude3Opus) },
	EngineClaude3Sonnet:  func() ai.Provider { return anthropic.New(anthropic.ModelClaude3Sonnet) },
	EngineGemini15Flash:  func() ai.Provider { return gemini.New(gemini.ModelGemini15Flash) },
	EngineGemini2Flash:   func() ai.Provider { return gemini.New(gemini.ModelGemini2FlashExp) },
}

// NewProvider returns a provider for the named engine, configured from the
// environment. An empty engine selects [DefaultEngine]. Unknown engine names
// are an error listing the supported set.
func NewProvider(engine string) (ai.Provider, error) {
	if engine == "" {
		engine = DefaultEngine
	}

	factory, ok := engineFactories[engine]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q, supported engines: %s", engine, strings.Join(Engines(), ", "))
	}

	return factory(), nil
}

// Engines returns the supported engine names in sorted order.
func Engines() []string {
	names := make([]string, 0, len(engineFactories))
	for name := range engineFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultKeyEnvVar returns the environment variable holding the API key for
// the named engine's vendor, or an empty string for unknown engines.
func DefaultKeyEnvVar(engine string) string {
	switch {
	case strings.Contains(engine, "gpt"):
		return "OPENAI_API_KEY"
	case strings.Contains(engine, "claude"):
		return "CLAUDE_API_KEY"
	case strings.Contains(engine, "gemini"):
		return "GEMINI_API_KEY"
	}
	return ""
}

// DefaultKeyFromEnv reads the API key for the named engine's vendor from the
// environment. It returns an empty string when the engine is unknown or the
// variable is unset.
func DefaultKeyFromEnv(engine string) string {
	envVar := DefaultKeyEnvVar(engine)
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}
