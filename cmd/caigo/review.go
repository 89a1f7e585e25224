package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caigo-ai/caigo/providers/ai/gai"
	"github.com/caigo-ai/caigo/tools/review"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review <path-or-url>",
		Aliases: []string{"cr"},
		Short:   "Review a local file or a web page",
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

			target := args[0]
			request := review.Request{Path: target}
			if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
				request = review.Request{URL: target}
			}

			result, err := review.Review(commandContext(cmd), provider, http.DefaultClient, request)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Review)
			return nil
		},
	}

	return cmd
}
