package cli

import (
	"fmt"

	"github.com/alexanderramin/kairos/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var projectID string
	var resourceAware bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the Critical Path Method over a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if resourceAware {
				r, err := app.Scheduling.ScheduleResourceAware(cmd.Context(), projectID)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.RenderSchedule(r))
				return nil
			}
			r, err := app.Scheduling.Schedule(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderSchedule(r))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().BoolVar(&resourceAware, "resource-aware", false, "compose a per-assignee calendar using team members and approved time off")
	cmd.MarkFlagRequired("project")
	return cmd
}
