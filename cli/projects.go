package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stsysd/folio/app"
	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/view"
)

func newListCmd(o *globalOptions) *cobra.Command {
	var (
		query  view.Query
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				vm := a.View(query)
				if asJSON {
					return writeJSON(out, vm)
				}
				printCards(out, vm)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query.Text, "query", "q", "", "Search title, description and technologies")
	cmd.Flags().StringVarP(&query.Category, "category", "c", "", "Show only this category ("+categoryChoices()+")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view model as JSON")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories)
	return cmd
}

func printCards(out io.Writer, vm view.ViewModel) {
	if vm.Empty {
		fmt.Fprintln(out, "No projects yet")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tTECHNOLOGIES\tDATE")
	for _, c := range vm.Cards {
		techs := strings.Join(c.Technologies, ", ")
		if c.MoreTechCount > 0 {
			techs += fmt.Sprintf(" +%d", c.MoreTechCount)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.StatusLabel, techs, c.Date)
	}
	tw.Flush()
}

func newShowCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one project as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseProjectID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				p, ok := a.Projects.FindByID(id)
				if !ok {
					return model.ErrProjectNotFound
				}
				return writeJSON(out, p)
			})
		},
	}
}

// draftFlags binds the editable project fields to flags.
type draftFlags struct {
	title, description, category string
	tech                         string
	github, demo, status         string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Project title")
	cmd.Flags().StringVar(&f.description, "description", "", "Project description")
	cmd.Flags().StringVar(&f.category, "category", "", "Category: "+categoryChoices())
	cmd.Flags().StringVar(&f.tech, "tech", "", "Comma-separated technologies")
	cmd.Flags().StringVar(&f.github, "github", "", "Repository URL")
	cmd.Flags().StringVar(&f.demo, "demo", "", "Demo URL")
	cmd.Flags().StringVar(&f.status, "status", "", "Status: "+statusChoices())
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories)
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatuses)
}

func categoryChoices() string {
	return strings.Join(completeValues(model.Categories), "|")
}

func statusChoices() string {
	return strings.Join(completeValues(model.Statuses), "|")
}

func completeCategories(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return completeValues(model.Categories), cobra.ShellCompDirectiveNoFileComp
}

func completeStatuses(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return completeValues(model.Statuses), cobra.ShellCompDirectiveNoFileComp
}

func completeValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// apply overwrites the fields of d whose flag was given.
func (f *draftFlags) apply(cmd *cobra.Command, d model.Draft) model.Draft {
	set := cmd.Flags().Changed
	if set("title") {
		d.Title = f.title
	}
	if set("description") {
		d.Description = f.description
	}
	if set("category") {
		d.Category = f.category
	}
	if set("tech") {
		d.Technologies = model.ParseTechnologies(f.tech)
	}
	if set("github") {
		d.GitHub = f.github
	}
	if set("demo") {
		d.Demo = f.demo
	}
	if set("status") {
		d.Status = f.status
	}
	return d
}

func newAddCmd(o *globalOptions) *cobra.Command {
	f := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				p, err := a.SaveProject(ctx, f.apply(cmd, model.Draft{}))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, p.ID)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd(o *globalOptions) *cobra.Command {
	f := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a project (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseProjectID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				p, ok := a.Projects.FindByID(id)
				if !ok {
					return model.ErrProjectNotFound
				}
				_, err := a.SaveProject(ctx, f.apply(cmd, model.DraftOf(p)))
				return err
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newRmCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a project (admin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseProjectID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				_, err := a.DeleteProject(ctx, id)
				return err
			})
		},
	}
}

func newClearCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every project (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				_, err := a.ClearAllData(ctx)
				return err
			})
		},
	}
}

func newSaveCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Write the projects to the store again (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				return a.SaveNow(ctx)
			})
		},
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
