package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/caigo-ai/caigo/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ask endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()
			s := server.NewServer(server.Config{
				ListenAddr: fmt.Sprintf(":%d", port),
			}, nil, logger)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-stop
				logger.Info("shutting down")
				if err := s.Shutdown(); err != nil {
					logger.Error("shutdown failed", "error", err)
				}
			}()

			return s.Run()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 9999, "Port to listen on")

	return cmd
}
