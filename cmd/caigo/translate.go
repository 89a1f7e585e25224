package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caigo-ai/caigo/providers/ai/gai"
	"github.com/caigo-ai/caigo/tools/translator"
)

func newTranslateCmd() *cobra.Command {
	var (
		targetLang string
		perLimit   int
	)

	cmd := &cobra.Command{
		Use:     "translate <text>",
		Aliases: []string{"t"},
		Short:   "Translate text, splitting long input into sentences",
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

			lang := translator.Japanese
			if targetLang != "ja" {
				lang = translator.English
			}

			request := translator.NewRequest(args[0], lang).
				SeparatePerLimit(perLimit).
				Separators([]rune{'.', '!', '?'})

			result, err := translator.Translate(commandContext(cmd), provider, request)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Translated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetLang, "target-lang", "t", "ja", "Target language (ja or en)")
	cmd.Flags().IntVarP(&perLimit, "separate-per-limit", "l", 1, "Sentence separators allowed per translated segment")

	return cmd
}
