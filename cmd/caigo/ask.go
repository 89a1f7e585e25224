package main

import (
	"github.com/spf13/cobra"

	"github.com/caigo-ai/caigo/handlers"
	"github.com/caigo-ai/caigo/providers/ai"
	"github.com/caigo-ai/caigo/providers/ai/gai"
)

const askLongDesc = `Ask a question and stream the answer to stdout.

The question may embed local file contents with {path} and remote pages
with [url]; both are inlined before the prompt is sent:

  caigo ask "review this file {main.go}"
  caigo ask "summarize [https://example.com/post]"`

func newAskCmd() *cobra.Command {
	var rolePlay string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question and stream the answer",
		Long:  askLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := engineFromFlags(cmd)
			if err != nil {
				return err
			}
			provider, err := gai.NewProvider(engine)
			if err != nil {
				return err
			}

			question := expandRemoteRefs(expandFileRefs(args[0]))

			var prompt ai.Prompt
			if rolePlay != "" {
				prompt = ai.AskWithRolePlay(question, rolePlay)
			} else {
				prompt = ai.Ask(question)
			}

			return provider.RequestMut(commandContext(cmd), prompt, handlers.NewPrinter())
		},
	}

	cmd.Flags().StringVarP(&rolePlay, "role-play", "r", "", "Role-play instruction prepended to the prompt")

	return cmd
}
