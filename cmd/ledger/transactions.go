package main

import (
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/aggregate"
	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		categoryID string
		date       string
		note       string
	)

	cmd := &cobra.Command{
		Use:   "add <expense|income> <amount>",
		Short: "Record a transaction",
		Long: `Record an expense or an income. Amounts accept a comma or a dot as the
decimal separator, e.g. "12,50" or "12.50". The date defaults to now.`,
		Example: `  ledger add expense 12,50 --category food --note lunch
  ledger add income 3500 --category salary --date 2025-10-05`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			typ, err := model.ParseTransactionType(args[0])
			if err != nil {
				return friendly(err)
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			txn, err := s.ledger.AddTransaction(ctx, ledger.NewTransaction{
				Date:       when,
				Type:       typ,
				Amount:     args[1],
				CategoryID: categoryID,
				Note:       note,
			})
			if err != nil {
				return friendly(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s %s on %s (%s)",
				txn.Category.Label(),
				model.FormatCurrency(txn.Amount, s.settings.Currency),
				txn.DayKey(),
				txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "Category id (see 'ledger categories list')")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default: now)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Free-text note")

	return cmd
}

func listCmd() *cobra.Command {
	var (
		month string
		typ   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `List transactions, newest day first, optionally limited to a month or a year.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			txns, err := s.ledger.Transactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			if month != "" {
				period, err := aggregate.ParsePeriod(month)
				if err != nil {
					return friendly(err)
				}
				txns = period.Filter(txns)
			}
			if typ != "" {
				t, err := model.ParseTransactionType(typ)
				if err != nil {
					return friendly(err)
				}
				txns = aggregate.FilterByType(txns, t)
			}

			var ordered []model.Transaction
			for _, day := range aggregate.GroupByDate(txns) {
				ordered = append(ordered, day.Transactions...)
			}
			return cli.RenderTransactions(cmd.OutOrStdout(), ordered, s.settings.Currency)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Period as YYYY-MM or YYYY")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only expense or income")

	return cmd
}

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			txn, err := s.ledger.Transaction(ctx, args[0])
			if err != nil {
				return friendly(err)
			}

			ok, err := confirm(cmd, force, fmt.Sprintf("Delete %s %s from %s?",
				txn.Category.Label(),
				model.FormatCurrency(txn.Amount, s.settings.Currency),
				txn.DayKey()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, cli.FormatInfo("Nothing deleted."))
				return nil
			}

			if _, err := s.ledger.DeleteTransaction(ctx, txn.ID); err != nil {
				return friendly(err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("Deleted "+txn.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
