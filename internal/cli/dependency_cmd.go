package cli

import (
	"fmt"

	"github.com/alexanderramin/kairos/internal/cli/formatter"
	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/spf13/cobra"
)

func newDependencyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dependency",
		Short: "Manage task dependencies",
	}
	cmd.AddCommand(newDependencyLinkCmd(app), newDependencyListCmd(app))
	return cmd
}

func newDependencyLinkCmd(app *App) *cobra.Command {
	var pred, succ, kind string
	var lag int
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link two tasks with a dependency",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &domain.Dependency{
				PredecessorID: pred,
				SuccessorID:   succ,
				Type:          domain.DependencyType(kind),
				LagDays:       lag,
			}
			return app.Dependencies.Link(cmd.Context(), d)
		},
	}
	cmd.Flags().StringVar(&pred, "predecessor", "", "predecessor task id")
	cmd.Flags().StringVar(&succ, "successor", "", "successor task id")
	cmd.Flags().StringVar(&kind, "type", "FS", "dependency type: FS, SS, FF, SF")
	cmd.Flags().IntVar(&lag, "lag", 0, "lag in working days (negative = lead)")
	cmd.MarkFlagRequired("predecessor")
	cmd.MarkFlagRequired("successor")
	return cmd
}

func newDependencyListCmd(app *App) *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.Dependencies.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			headers := []string{"PREDECESSOR", "SUCCESSOR", "TYPE", "LAG"}
			rows := make([][]string, len(deps))
			for i, d := range deps {
				rows[i] = []string{d.PredecessorID, d.SuccessorID, string(d.Type), fmt.Sprintf("%d", d.LagDays)}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.MarkFlagRequired("project")
	return cmd
}
