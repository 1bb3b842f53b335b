package cli

import (
	"fmt"

	"github.com/alexanderramin/kairos/internal/cli/formatter"
	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage project phases and their lock state",
	}
	cmd.AddCommand(newPhaseCreateCmd(app), newPhaseLocksCmd(app))
	return cmd
}

func newPhaseCreateCmd(app *App) *cobra.Command {
	var projectID, name string
	var order int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.ProjectPhase{
				ID:         uuid.NewString(),
				ProjectID:  projectID,
				Name:       name,
				PhaseOrder: order,
				Status:     domain.PhasePending,
			}
			if err := app.Phases.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&name, "name", "", "phase name")
	cmd.Flags().IntVar(&order, "order", 1, "phase order (unique within the project)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newPhaseLocksCmd(app *App) *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "locks",
		Short: "Show each phase's current lock state",
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := app.Phases.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			nameByID := make(map[string]string, len(phases))
			for _, p := range phases {
				nameByID[p.ID] = p.Name
			}

			locks, err := app.Phases.Locks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderPhaseLocks(locks, nameByID))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.MarkFlagRequired("project")
	return cmd
}
