package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/domain"
)

// RenderSchedule renders a SchedulingResult as a table of tasks with their
// computed ES/EF/LS/LF/slack/criticality, followed by the project end date
// and critical path.
func RenderSchedule(result domain.SchedulingResult) string {
	if len(result.Tasks) == 0 {
		return StyleDim.Render("no tasks to schedule") + "\n"
	}

	headers := []string{"TASK", "ES", "EF", "LS", "LF", "SLACK", "CRITICAL"}
	rows := make([][]string, len(result.Tasks))
	for i, t := range result.Tasks {
		critStyle := CriticalityStyle(t.IsCritical)
		critLabel := "no"
		if t.IsCritical {
			critLabel = "yes"
		}
		rows[i] = []string{
			t.Title,
			t.ES.Format(calendar.DateLayout),
			t.EF.Format(calendar.DateLayout),
			t.LS.Format(calendar.DateLayout),
			t.LF.Format(calendar.DateLayout),
			fmt.Sprintf("%d", t.Slack),
			critStyle.Render(critLabel),
		}
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	if result.ProjectEndDate != nil {
		b.WriteString(StyleBold.Render("project end: ") + result.ProjectEndDate.Format(calendar.DateLayout) + "\n")
	}
	b.WriteString(StyleBold.Render(fmt.Sprintf("critical path (%d tasks): ", len(result.CriticalPath))))
	b.WriteString(strings.Join(result.CriticalPath, " -> "))
	b.WriteString("\n")
	return b.String()
}

// RenderPhaseLocks renders a slice of PhaseLockInfo as a table.
func RenderPhaseLocks(locks []domain.PhaseLockInfo, nameByID map[string]string) string {
	if len(locks) == 0 {
		return StyleDim.Render("no phases") + "\n"
	}
	headers := []string{"PHASE", "STATE", "REASON", "BLOCKED BY"}
	rows := make([][]string, len(locks))
	for i, l := range locks {
		blockedBy := ""
		if l.BlockedByPhaseName != nil {
			blockedBy = *l.BlockedByPhaseName
		}
		rows[i] = []string{
			nameByID[l.PhaseID],
			LockIndicator(l.IsLocked),
			string(l.Reason),
			blockedBy,
		}
	}
	return RenderTable(headers, rows)
}
