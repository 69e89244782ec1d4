package main

import (
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/storage"
	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snapshots"},
		Short:   "Manage database snapshots",
		Long: `Snapshots are full copies of the database kept beside it. One is taken
automatically before every backup import and reset; the five most recent
automatic snapshots are kept.`,
	}

	cmd.AddCommand(createSnapshotCmd())
	cmd.AddCommand(listSnapshotsCmd())
	cmd.AddCommand(restoreSnapshotCmd())
	cmd.AddCommand(deleteSnapshotCmd())

	return cmd
}

// withSnapshots opens a session and its snapshot manager.
func withSnapshots(cmd *cobra.Command, fn func(*session, *storage.SnapshotManager) error) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	manager, err := s.store.NewSnapshotManager()
	if err != nil {
		return err
	}
	return fn(s, manager)
}

func createSnapshotCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create [id]",
		Short: "Take a snapshot now",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return withSnapshots(cmd, func(_ *session, m *storage.SnapshotManager) error {
				info, err := m.Create(cmd.Context(), id, description)
				if err != nil {
					return friendly(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Created snapshot "+info.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "m", "", "What this snapshot is for")

	return cmd
}

func listSnapshotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshots(cmd, func(_ *session, m *storage.SnapshotManager) error {
				snapshots, err := m.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list snapshots: %w", err)
				}
				return cli.RenderSnapshots(cmd.OutOrStdout(), snapshots)
			})
		},
	}
}

func restoreSnapshotCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace all data with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return withSnapshots(cmd, func(_ *session, m *storage.SnapshotManager) error {
				ok, err := confirm(cmd, force, fmt.Sprintf("Replace all data with snapshot %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Restore canceled."))
					return nil
				}
				if err := m.Restore(cmd.Context(), args[0]); err != nil {
					return friendly(err)
				}
				fmt.Fprintln(out, cli.FormatSuccess("Restored snapshot "+args[0]))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func deleteSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshots(cmd, func(_ *session, m *storage.SnapshotManager) error {
				if err := m.Delete(cmd.Context(), args[0]); err != nil {
					return friendly(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted snapshot "+args[0]))
				return nil
			})
		},
	}
}
