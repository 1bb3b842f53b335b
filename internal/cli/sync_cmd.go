package cli

import (
	"fmt"
	"net/http"

	"github.com/alexanderramin/kairos/internal/offlinequeue"
	"github.com/alexanderramin/kairos/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func offlinequeueStrategy(s string) offlinequeue.Strategy {
	if s == string(offlinequeue.FirstWriteWins) {
		return offlinequeue.FirstWriteWins
	}
	return offlinequeue.LastWriteWins
}

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Inspect and drive the offline-capable replicated document",
	}
	cmd.AddCommand(
		newSyncStatusCmd(app),
		newSyncPullCmd(app),
		newSyncReplayCmd(app),
		newSyncQueueCmd(app),
		newSyncServeCmd(app),
		newSyncWatchCmd(app),
	)
	return cmd
}

func newSyncServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the long-poll hub replicas exchange updates through",
		Long: `serve runs the relay other kairos processes point "sync watch" at. The hub
holds no document state; it only fans each published update out to every
replica currently polling the same document id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hub := transport.NewHub()
			server := &http.Server{Addr: addr, Handler: hub.Router()}

			go func() {
				<-cmd.Context().Done()
				_ = server.Close()
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "hub listening on %s\n", addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func newSyncStatusCmd(app *App) *cobra.Command {
	var documentID string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print a document's connection and queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.NewSync(documentID)
			if err != nil {
				return err
			}
			s := session.Document.GetStatus()
			count, err := session.Queue.GetQueueCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "connected=%t syncing=%t pending=%d queued=%d\n",
				s.Connected, s.Syncing, s.PendingChanges, count)
			if s.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", s.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&documentID, "document", "", "document id")
	cmd.MarkFlagRequired("document")
	return cmd
}

func newSyncPullCmd(app *App) *cobra.Command {
	var documentID, projectID string
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Load a project's current tasks from the record store into the document",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.NewSync(documentID)
			if err != nil {
				return err
			}
			return session.PullProjectTasks(cmd.Context(), projectID)
		},
	}
	cmd.Flags().StringVar(&documentID, "document", "", "document id")
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.MarkFlagRequired("document")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newSyncReplayCmd(app *App) *cobra.Command {
	var documentID string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Apply every queued offline operation to the record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.NewSync(documentID)
			if err != nil {
				return err
			}
			applied, err := session.ReplayQueue(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d operation(s)\n", applied)
			return nil
		},
	}
	cmd.Flags().StringVar(&documentID, "document", "", "document id")
	cmd.MarkFlagRequired("document")
	return cmd
}

func newSyncQueueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the offline operation queue",
	}
	cmd.AddCommand(newSyncQueueListCmd(app), newSyncQueueResolveCmd(app))
	return cmd
}

func newSyncQueueListCmd(app *App) *cobra.Command {
	var documentID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending offline operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.NewSync(documentID)
			if err != nil {
				return err
			}
			ops, err := session.Queue.GetPendingOperations(cmd.Context())
			if err != nil {
				return err
			}
			for _, op := range ops {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s/%s @%d\n", op.ID, op.Type, op.Entity, op.EntityID, op.Timestamp)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&documentID, "document", "", "document id")
	cmd.MarkFlagRequired("document")
	return cmd
}

func newSyncQueueResolveCmd(app *App) *cobra.Command {
	var documentID, entity, entityID, strategy string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve conflicting queued operations against one entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.NewSync(documentID)
			if err != nil {
				return err
			}
			merged, err := session.Queue.ResolveConflicts(cmd.Context(), entity, entityID, offlinequeueStrategy(strategy))
			if err != nil {
				return err
			}
			for field, value := range merged {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&documentID, "document", "", "document id")
	cmd.Flags().StringVar(&entity, "entity", "task", "entity type")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "entity id")
	cmd.Flags().StringVar(&strategy, "strategy", "last_write_wins", "last_write_wins or first_write_wins")
	cmd.MarkFlagRequired("document")
	cmd.MarkFlagRequired("entity-id")
	return cmd
}

func newSyncWatchCmd(app *App) *cobra.Command {
	var documentID, url string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open a live view of a document's connection status and presence",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.NewSync(documentID)
			if err != nil {
				return err
			}
			model := newWatchModel(session, app.Transport, url, documentID)
			program := tea.NewProgram(model)
			_, err = program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&documentID, "document", "", "document id")
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080", "transport base url")
	cmd.MarkFlagRequired("document")
	return cmd
}
