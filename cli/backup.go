package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stsysd/folio/app"
)

func newExportCmd(o *globalOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				path, err := a.Export(ctx, dir)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", ".", "Directory to write the backup into")
	return cmd
}

func newImportCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace every project with a backup file (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				_, err := a.Import(ctx, args[0])
				return err
			})
		},
	}
}
