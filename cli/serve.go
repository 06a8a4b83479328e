package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stsysd/folio/api"
	"github.com/stsysd/folio/app"
	"github.com/stsysd/folio/logging"
	"github.com/stsysd/folio/store"
)

func newServeCmd(o *globalOptions) *cobra.Command {
	var (
		host string
		port string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the folio HTTP API.

The admin session is shared by every client of the server, exactly as
a single user would hold it on the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Host = host
			}
			if port != "" {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := store.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			a := app.New(ctx, s, cfg, app.LogNotifier{Log: logging.Component("app")}, app.DeclineDialog{})
			defer a.Close()

			logging.Logger.Info().
				Str("version", Version).
				Str("store", cfg.Store).
				Msg("starting folio server")
			return api.NewServer(a).Run(ctx, cfg.Addr())
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Host to listen on (overrides FOLIO_SERVER_HOST)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides FOLIO_SERVER_PORT)")
	return cmd
}
