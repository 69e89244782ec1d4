package main

import (
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all transactions, categories and settings",
		Long: `Reset removes every transaction, custom category and setting, returning
the ledger to its first-run state.

This is a destructive operation. A snapshot is taken first so it can be
undone with 'ledger snapshot restore'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			txns, err := s.ledger.Transactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to count transactions: %w", err)
			}

			if !force {
				fmt.Fprintf(out, "This will delete %d transactions, your categories and your settings.\n", len(txns))
			}
			ok, err := confirm(cmd, force, "Are you sure you want to continue?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, cli.FormatInfo("Reset canceled."))
				return nil
			}

			s.autoSnapshot(ctx, out, "reset")

			if err := s.ledger.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("All data removed."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
