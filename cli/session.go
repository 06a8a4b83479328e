package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/Songmu/prompter"
	"github.com/spf13/cobra"

	"github.com/stsysd/folio/app"
)

func newLoginCmd(o *globalOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Enable admin mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				password = prompter.Password("Admin password")
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				if err := a.Login(ctx, password); err != nil {
					return err
				}
				if exp, ok := a.Gate.ExpiresAt(); ok {
					fmt.Fprintf(out, "session valid until %s\n", exp.Local().Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Disable admin mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				return a.Logout(ctx)
			})
		},
	}
}

func newPasswdCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				_, err := a.ChangeCredential(ctx)
				return err
			})
		},
	}
}
