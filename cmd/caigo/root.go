package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/caigo-ai/caigo/providers/ai/gai"
	"github.com/caigo-ai/caigo/providers/observability"
	"github.com/caigo-ai/caigo/providers/observability/slogobs"
)

const rootLongDesc = `caigo streams answers from LLM engines to your terminal.

Engines are addressed by short names, for example:
  caigo ask "what is a goroutine?" -e gpt4o-mini
  caigo translate "hello, world!" -t ja
  caigo serve -p 9999

API keys are read from OPENAI_API_KEY, CLAUDE_API_KEY, and GEMINI_API_KEY.
A .env file in the working directory is loaded automatically.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "caigo",
		Short:         "Stream LLM answers from multiple vendors",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Missing .env is fine; the environment may carry the keys.
			_ = godotenv.Load()

			level := slog.LevelWarn
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("engine", "e", gai.DefaultEngine,
		"Engine to use ("+strings.Join(gai.Engines(), ", ")+")")

	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newTranslateCmd())
	cmd.AddCommand(newConversationCmd())
	cmd.AddCommand(newReviewCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// commandContext attaches the observer so providers emit their debug
// telemetry through slog.
func commandContext(cmd *cobra.Command) context.Context {
	return observability.ContextWithObserver(cmd.Context(), slogobs.New(slog.Default()))
}

// engineFromFlags resolves the provider selected by the --engine flag.
func engineFromFlags(cmd *cobra.Command) (string, error) {
	engine, err := cmd.Flags().GetString("engine")
	if err != nil {
		return "", err
	}
	return engine, nil
}
