// Package cli provides the folio command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stsysd/folio/app"
	"github.com/stsysd/folio/config"
	"github.com/stsysd/folio/logging"
	"github.com/stsysd/folio/store"
)

// Version is set at build time.
var Version = "0.1.0"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	dataDir  string
	store    string
	logLevel string
	yes      bool

	// dialog overrides the terminal dialog in tests.
	dialog app.Dialog
}

// NewRootCmd builds the folio command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globalOptions{})
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "folio - a personal project portfolio",
		Long: `folio keeps a list of portfolio projects, renders them with search,
category filters, statistics and a technology cloud, and gates every
change behind an admin password.

Run 'folio serve' to start the HTTP API, or use the subcommands below
to manage the portfolio from the terminal.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory (overrides FOLIO_DATA_DIR)")
	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "Store backend: sqlite|redis|memory (overrides FOLIO_STORE)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	cmd.PersistentFlags().BoolVarP(&opts.yes, "yes", "y", false, "Answer yes to every confirmation")

	cmd.SetVersionTemplate(fmt.Sprintf("folio %s\n", Version))

	cmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newClearCmd(opts),
		newSaveCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newPasswdCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newStatsCmd(opts),
		newCloudCmd(opts),
		newThemeCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the environment and applies the flags on top.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.store != "" {
		cfg.Store = o.store
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Output: os.Stderr,
		Pretty: cfg.LogPretty,
	})
	return cfg, nil
}

// openApp opens the configured store and builds the App on it.
// The caller must Close the returned App.
func (o *globalOptions) openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var dlg app.Dialog = &terminalDialog{yes: o.yes}
	if o.dialog != nil {
		dlg = o.dialog
	}
	return app.New(ctx, s, cfg, &terminalNotifier{w: cmd.ErrOrStderr()}, dlg), nil
}

// withApp runs fn with an open App and closes it afterwards.
func (o *globalOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, out io.Writer) error) error {
	a, err := o.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, a, cmd.OutOrStdout())
}
