package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/cli/formatter"
	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectCreateCmd(app), newProjectListCmd(app), newProjectHolidayCmd(app))
	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var name, start string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(calendar.DateLayout, start)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			p := domain.NewProject(uuid.NewString(), name, startDate)
			p.WorkingDays = app.Config.Project.WeekdaySet()
			if hours := app.Config.Project.DefaultWorkHours; hours > 0 {
				p.DefaultWorkHours = hours
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&start, "start", "", "project start date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("start")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			headers := []string{"ID", "NAME", "STATUS", "START"}
			rows := make([][]string, len(projects))
			for i, p := range projects {
				rows[i] = []string{p.ID, p.Name, string(p.Status), p.StartDate.Format(calendar.DateLayout)}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newProjectHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage a project's calendar exceptions",
	}
	cmd.AddCommand(newProjectHolidayAddCmd(app), newProjectHolidayListCmd(app))
	return cmd
}

func newProjectHolidayAddCmd(app *App) *cobra.Command {
	var projectID, date, end, name, kind string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a holiday or non-working block",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(calendar.DateLayout, date)
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
			ex := &domain.CalendarException{
				ID:        uuid.NewString(),
				ProjectID: projectID,
				Date:      day,
				Type:      domain.CalendarExceptionType(kind),
				Name:      name,
			}
			if end != "" {
				endDate, err := time.Parse(calendar.DateLayout, end)
				if err != nil {
					return fmt.Errorf("parsing --end: %w", err)
				}
				if endDate.Before(day) {
					return fmt.Errorf("--end is before --date")
				}
				ex.EndDate = &endDate
			}
			if err := app.CalendarExceptions.Create(cmd.Context(), ex); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ex.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&date, "date", "", "first excluded date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last excluded date, for a multi-day block")
	cmd.Flags().StringVar(&name, "name", "", "label shown in listings")
	cmd.Flags().StringVar(&kind, "type", string(domain.ExceptionHoliday), "holiday or non_working")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("date")
	return cmd
}

func newProjectHolidayListCmd(app *App) *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's calendar exceptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			exceptions, err := app.CalendarExceptions.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			headers := []string{"ID", "DATE", "END", "TYPE", "NAME"}
			rows := make([][]string, len(exceptions))
			for i, ex := range exceptions {
				end := ""
				if ex.EndDate != nil {
					end = ex.EndDate.Format(calendar.DateLayout)
				}
				rows[i] = []string{ex.ID, ex.Date.Format(calendar.DateLayout), end, string(ex.Type), ex.Name}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.MarkFlagRequired("project")
	return cmd
}
