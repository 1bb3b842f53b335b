package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates the top-level "kairos" command and registers every
// component's subcommand against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "kairos",
		Short: "Critical-path project scheduler",
		Long: `kairos schedules projects under the Critical Path Method: working-day
calendars, four dependency kinds, resource-aware time off, phase gating,
progress reconciliation, and offline-capable sync.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlagEnvOverrides(cmd.Flags())
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newDependencyCmd(app),
		newPhaseCmd(app),
		newTeamMemberCmd(app),
		newScheduleCmd(app),
		newProgressCmd(app),
		newSyncCmd(app),
	)
	return root
}

// bindFlagEnvOverrides seeds any flag the user didn't pass explicitly from a
// KAIROS_<FLAG> environment variable (dashes become underscores), so scripted
// callers can fix e.g. KAIROS_PROJECT once instead of repeating --project.
func bindFlagEnvOverrides(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}
		env := "KAIROS_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		v, ok := os.LookupEnv(env)
		if !ok {
			return
		}
		if setErr := flags.Set(f.Name, v); setErr != nil {
			err = fmt.Errorf("applying %s to --%s: %w", env, f.Name, setErr)
		}
	})
	return err
}
