package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stsysd/folio/app"
	"github.com/stsysd/folio/view"
)

func newStatsCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show portfolio statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				s := view.ComputeStats(a.Projects.List())
				fmt.Fprintf(out, "projects:     %d\n", s.Total)
				fmt.Fprintf(out, "technologies: %d\n", s.Technologies)
				fmt.Fprintf(out, "in progress:  %d\n", s.Active)
				return nil
			})
		},
	}
}

func newCloudCmd(o *globalOptions) *cobra.Command {
	var svg bool
	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Show the technology cloud",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				cloud := view.TechnologyCloud(a.Projects.List())
				if svg {
					fmt.Fprintln(out, view.CloudSVG(cloud, nil))
					return nil
				}
				for _, e := range cloud {
					fmt.Fprintf(out, "%-20s %3d  %.2frem\n", e.Name, e.Count, e.Weight)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&svg, "svg", false, "Print the cloud as SVG")
	return cmd
}

func newThemeCmd(o *globalOptions) *cobra.Command {
	var toggle bool
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the light/dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				theme := a.Theme(ctx)
				if toggle {
					var err error
					if theme, err = a.ToggleTheme(ctx); err != nil {
						return err
					}
				}
				fmt.Fprintln(out, theme)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&toggle, "toggle", false, "Switch between light and dark")
	return cmd
}
