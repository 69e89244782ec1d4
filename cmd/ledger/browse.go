package main

import (
	"github.com/Veraticus/daily-ledger/internal/tui"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the ledger as an interactive calendar",
		Long: `Open a full-screen month calendar. Move between days with the arrow
keys, switch months with [ and ], press Enter to see a day's transactions
and ? for all shortcuts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			return tui.Run(ctx, s.ledger)
		},
	}
}
