package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/kairos/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// kairosHuhTheme reskins huh's default theme with the same Gruvbox palette
// the lipgloss table/status rendering already uses, so a wizard prompt and
// a plain command's output look like one program.
func kairosHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validatePositiveInt accepts empty (meaning "use the default") or a
// positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// taskWizardInput is the huh-collected shape of a new task, before it's
// translated into a domain.Task by the caller.
type taskWizardInput struct {
	Title          string
	Duration       string
	ConstraintType string
	Predecessor    string
}

// runTaskWizard collects a task's title, duration, constraint type, and an
// optional predecessor dependency, in one themed multi-group form. An empty
// Predecessor means "no dependency". predecessorOptions is nil when the
// project has no existing tasks to depend on.
func runTaskWizard(ctx context.Context, app *App, projectID string) (taskWizardInput, error) {
	var in taskWizardInput
	in.Duration = "1"
	in.ConstraintType = "none"

	fields := []huh.Field{
		huh.NewInput().
			Title("Task title").
			Value(&in.Title).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Duration (working days)").
			Placeholder("1").
			Value(&in.Duration).
			Validate(validatePositiveInt),
		huh.NewSelect[string]().
			Title("Constraint").
			Options(
				huh.NewOption("None", "none"),
				huh.NewOption("Must start on (MSO)", "MSO"),
				huh.NewOption("Start no earlier than (SNET)", "SNET"),
				huh.NewOption("Finish no later than (FNLT)", "FNLT"),
			).
			Value(&in.ConstraintType),
	}

	predecessorOptions, err := predecessorSelectOptions(ctx, app, projectID)
	if err == nil && len(predecessorOptions) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Depends on (finish-to-start, optional)").
			Options(predecessorOptions...).
			Value(&in.Predecessor))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(kairosHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return taskWizardInput{}, err
	}
	return in, nil
}

func predecessorSelectOptions(ctx context.Context, app *App, projectID string) ([]huh.Option[string], error) {
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	options := make([]huh.Option[string], 0, len(tasks)+1)
	options = append(options, huh.NewOption("(none)", ""))
	for _, t := range tasks {
		options = append(options, huh.NewOption(t.Title, t.ID))
	}
	return options, nil
}
