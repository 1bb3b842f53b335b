package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/progress"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	var taskID string
	var percent int
	var percentSet bool
	var status string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Reconcile a task's percent_complete/status/actual dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var change progress.Change
			if percentSet {
				change.Percent = &percent
			} else if status != "" {
				s := domain.TaskStatus(status)
				change.Status = &s
			} else {
				return fmt.Errorf("one of --percent or --status is required")
			}

			updated, err := app.Progress.Apply(cmd.Context(), taskID, change, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% %s\n", updated.ID, updated.PercentComplete, updated.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "task id")
	cmd.Flags().IntVar(&percent, "percent", 0, "new percent complete (0-100)")
	cmd.Flags().StringVar(&status, "status", "", "new status: pending, in_progress, done")
	cmd.MarkFlagRequired("task")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		percentSet = cmd.Flags().Changed("percent")
		return nil
	}
	return cmd
}
