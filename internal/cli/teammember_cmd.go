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

func newTeamMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage team members",
	}
	cmd.AddCommand(newTeamMemberCreateCmd(app), newTeamMemberListCmd(app), newTimeOffCmd(app))
	return cmd
}

func newTeamMemberCreateCmd(app *App) *cobra.Command {
	var userID, displayName, role string
	var hoursPerDay int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team member",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.TeamMember{
				ID:              uuid.NewString(),
				UserID:          userID,
				DisplayName:     displayName,
				Role:            domain.CoalesceStr(role, "member"),
				EmploymentType:  domain.EmploymentFullTime,
				WorkHoursPerDay: hoursPerDay,
			}
			if err := app.TeamMembers.Create(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "backing user id")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", "member role (defaults to \"member\")")
	cmd.Flags().IntVar(&hoursPerDay, "hours-per-day", 8, "work hours per day")
	cmd.MarkFlagRequired("user-id")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newTeamMemberListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.TeamMembers.List(cmd.Context())
			if err != nil {
				return err
			}
			headers := []string{"ID", "NAME", "EMPLOYMENT", "HOURS/DAY"}
			rows := make([][]string, len(members))
			for i, m := range members {
				rows[i] = []string{m.ID, m.DisplayName, string(m.EmploymentType), fmt.Sprintf("%d", m.WorkHoursPerDay)}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTimeOffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time-off",
		Short: "Manage a member's time off",
	}
	cmd.AddCommand(newTimeOffAddCmd(app), newTimeOffListCmd(app))
	return cmd
}

func newTimeOffAddCmd(app *App) *cobra.Command {
	var memberID, start, end, kind, status string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a time-off range",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(calendar.DateLayout, start)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			endDate, err := time.Parse(calendar.DateLayout, end)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}
			if endDate.Before(startDate) {
				return fmt.Errorf("--end is before --start")
			}
			to := &domain.TimeOff{
				ID:           uuid.NewString(),
				TeamMemberID: memberID,
				StartDate:    startDate,
				EndDate:      endDate,
				Type:         domain.TimeOffType(kind),
				Status:       domain.TimeOffStatus(status),
			}
			if err := app.TimeOff.Create(cmd.Context(), to); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), to.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&memberID, "member", "", "team member id")
	cmd.Flags().StringVar(&start, "start", "", "first day off (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day off (YYYY-MM-DD)")
	cmd.Flags().StringVar(&kind, "type", string(domain.TimeOffVacation), "vacation, sick, personal, other")
	cmd.Flags().StringVar(&status, "status", string(domain.TimeOffPending), "pending, approved, rejected")
	cmd.MarkFlagRequired("member")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func newTimeOffListCmd(app *App) *cobra.Command {
	var memberID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a member's time off",
		RunE: func(cmd *cobra.Command, args []string) error {
			ranges, err := app.TimeOff.ListByMember(cmd.Context(), memberID)
			if err != nil {
				return err
			}
			headers := []string{"ID", "START", "END", "TYPE", "STATUS"}
			rows := make([][]string, len(ranges))
			for i, to := range ranges {
				rows[i] = []string{
					to.ID,
					to.StartDate.Format(calendar.DateLayout),
					to.EndDate.Format(calendar.DateLayout),
					string(to.Type),
					string(to.Status),
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&memberID, "member", "", "team member id")
	cmd.MarkFlagRequired("member")
	return cmd
}
