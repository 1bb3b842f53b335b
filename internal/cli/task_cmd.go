package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/cli/formatter"
	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// stdinIsInteractive reports whether stdin is an interactive terminal,
// deciding whether "task create --interactive" can actually launch a huh
// form rather than hang waiting for input that will never come.
func stdinIsInteractive(stdinFd uintptr) bool {
	return isatty.IsTerminal(stdinFd) || isatty.IsCygwinTerminal(stdinFd)
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskCreateCmd(app), newTaskListCmd(app), newTaskAssignCmd(app), newTaskAssignmentsCmd(app))
	return cmd
}

func newTaskCreateCmd(app *App) *cobra.Command {
	var projectID, title string
	var duration int
	var milestone bool
	var manualStart string
	var interactive bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			t := &domain.Task{
				ID:             uuid.NewString(),
				ProjectID:      projectID,
				Title:          title,
				Type:           domain.TaskTypeTask,
				Priority:       domain.PriorityMedium,
				Status:         domain.TaskPending,
				Duration:       duration,
				SchedulingMode: domain.SchedulingAuto,
				ConstraintType: domain.ConstraintNone,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			var predecessorID string

			if interactive {
				if !stdinIsInteractive(os.Stdin.Fd()) {
					return fmt.Errorf("--interactive requires a terminal on stdin")
				}
				in, err := runTaskWizard(cmd.Context(), app, projectID)
				if err != nil {
					return fmt.Errorf("task wizard: %w", err)
				}
				t.Title = in.Title
				if d, err := strconv.Atoi(domain.CoalesceStr(in.Duration, "1")); err == nil {
					t.Duration = d
				}
				t.ConstraintType = domain.ConstraintType(in.ConstraintType)
				predecessorID = in.Predecessor
			}

			if milestone {
				t.Type = domain.TaskTypeMilestone
				t.Duration = 0
			}
			if manualStart != "" {
				d, err := time.Parse(calendar.DateLayout, manualStart)
				if err != nil {
					return fmt.Errorf("parsing --manual-start: %w", err)
				}
				t.SchedulingMode = domain.SchedulingManual
				t.StartDate = &d
			}
			if err := app.Tasks.Create(cmd.Context(), t); err != nil {
				return err
			}
			if predecessorID != "" {
				if err := app.Dependencies.Link(cmd.Context(), &domain.Dependency{
					PredecessorID: predecessorID,
					SuccessorID:   t.ID,
					Type:          domain.DependencyFS,
				}); err != nil {
					return fmt.Errorf("linking predecessor: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().IntVar(&duration, "duration", 1, "duration in working days")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "create a zero-duration milestone")
	cmd.Flags().StringVar(&manualStart, "manual-start", "", "pin this task's start date (YYYY-MM-DD), switching it to manual scheduling")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "collect title/duration/constraint/dependency through a form")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			headers := []string{"ID", "TITLE", "TYPE", "STATUS", "DURATION", "PERCENT"}
			rows := make([][]string, len(tasks))
			for i, t := range tasks {
				statusCell := formatter.StatusStyle(t.Status).Render(string(t.Status))
				rows[i] = []string{t.ID, t.Title, string(t.Type), statusCell, fmt.Sprintf("%d", t.Duration), fmt.Sprintf("%d%%", t.PercentComplete)}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskAssignCmd(app *App) *cobra.Command {
	var taskID, userID, notes string
	var hours float64
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a team member to a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.TaskAssignment{
				TaskID:         taskID,
				UserID:         userID,
				AllocatedHours: hours,
				Notes:          notes,
			}
			return app.Assignments.Upsert(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "task id")
	cmd.Flags().StringVar(&userID, "user", "", "assignee user id")
	cmd.Flags().Float64Var(&hours, "hours", 0, "allocated hours (must be positive)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form note")
	cmd.MarkFlagRequired("task")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("hours")
	return cmd
}

func newTaskAssignmentsCmd(app *App) *cobra.Command {
	var taskID string
	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "List a task's assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := app.Assignments.ListByTask(cmd.Context(), taskID)
			if err != nil {
				return err
			}
			headers := []string{"USER", "ALLOCATED", "ACTUAL", "NOTES"}
			rows := make([][]string, len(assignments))
			for i, a := range assignments {
				rows[i] = []string{
					a.UserID,
					fmt.Sprintf("%.1f", a.AllocatedHours),
					fmt.Sprintf("%.1f", a.ActualHours),
					a.Notes,
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "task id")
	cmd.MarkFlagRequired("task")
	return cmd
}
