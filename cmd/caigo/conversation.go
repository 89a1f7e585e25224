package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caigo-ai/caigo/handlers"
	"github.com/caigo-ai/caigo/internal/utils"
	"github.com/caigo-ai/caigo/providers/ai"
	"github.com/caigo-ai/caigo/providers/ai/gai"
)

const conversationLongDesc = `Continue a conversation given as a JSON message list.

The list holds objects with "role" ("user" or "ai") and "comment" fields:

  caigo conversation '[{"role":"user","comment":"hi"},{"role":"ai","comment":"hello!"},{"role":"user","comment":"how are you?"}]'

Slightly malformed JSON (trailing commas, single quotes) is repaired before
parsing.`

type conversationMessage struct {
	Role    string `json:"role"`
	Comment string `json:"comment"`
}

func newConversationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversation <json>",
		Aliases: []string{"conv"},
		Short:   "Continue a conversation from a JSON message list",
		Long:    conversationLongDesc,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := engineFromFlags(cmd)
			if err != nil {
				return err
			}
			provider, err := gai.NewProvider(engine)
			if err != nil {
				return err
			}

			messages, err := utils.ParseJSONLenient[[]conversationMessage](args[0])
			if err != nil {
				return fmt.Errorf("parsing conversation: %w", err)
			}

			conversation := ai.Conversation{}
			for _, message := range messages {
				switch message.Role {
				case "ai":
					conversation.AddAIMessage(message.Comment)
				case "user":
					conversation.AddUserMessage(message.Comment)
				default:
					return fmt.Errorf("unknown role %q, want \"user\" or \"ai\"", message.Role)
				}
			}

			prompt := ai.FromConversation(conversation)
			return provider.RequestMut(commandContext(cmd), prompt, handlers.NewPrinter())
		},
	}

	return cmd
}
