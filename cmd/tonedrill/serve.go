package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tonedrill/api"
)

func serveCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookup API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			tuning, err := cfg.BuildTuning()
			if err != nil {
				return err
			}

			logger := opts.logger(cmd.ErrOrStderr())
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(tuning, logger)
			return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.AllowedOrigins)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (default from config)")

	return cmd
}
