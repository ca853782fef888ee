package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/paperswipe/internal/adapters/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommendation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.cfg.Server.Addr
			}
			if err := app.cfg.API.RequireCredentials(); err != nil {
				app.logger.Warn().Err(err).Msg("searches will fail until credentials are configured")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := httpapi.NewServer(httpapi.DefaultConfig(addr), app.searchService, app.libraryService, app.metrics, app.logger)
			if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "serving on http://%s\n", addr); err != nil {
				return err
			}
			return server.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")

	return cmd
}
