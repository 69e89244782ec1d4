package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/daily-ledger/internal/aggregate"
	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/spf13/cobra"
)

func dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show one day's transactions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			date := time.Now()
			if len(args) == 1 {
				parsed, err := parseDate(args[0])
				if err != nil {
					return err
				}
				date = parsed
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			day, err := s.ledger.Day(ctx, date)
			if err != nil {
				return fmt.Errorf("failed to load day: %w", err)
			}
			return cli.RenderDay(cmd.OutOrStdout(), day, s.settings.Currency)
		},
	}
}

func calendarCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month as a calendar",
		Long: `Show a month grid, Sunday first. Days with activity are marked
"+" when they closed positive, "-" when negative and "=" when they broke even.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period := aggregate.MonthOf(time.Now())
			if month != "" {
				parsed, err := aggregate.ParsePeriod(month)
				if err != nil {
					return friendly(err)
				}
				if parsed.IsYear() {
					return friendly(fmt.Errorf("%w: calendar needs a month, got %q", aggregate.ErrInvalidPeriod, month))
				}
				period = parsed
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			view, err := s.ledger.Month(ctx, period.Year, int(period.Month)-1)
			if err != nil {
				return fmt.Errorf("failed to load month: %w", err)
			}
			return cli.RenderCalendar(cmd.OutOrStdout(), view, time.Now(), s.settings.Currency)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default: current month)")

	return cmd
}

func summaryCmd() *cobra.Command {
	var (
		month string
		year  int
		typ   string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a month or a year",
		Long: `Show income, expenses and balance for a month or a year, the change
against the period before and the breakdown by category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period := aggregate.MonthOf(time.Now())
			switch {
			case year != 0:
				parsed, err := aggregate.ParsePeriod(strconv.Itoa(year))
				if err != nil {
					return friendly(err)
				}
				period = parsed
			case month != "":
				parsed, err := aggregate.ParsePeriod(month)
				if err != nil {
					return friendly(err)
				}
				period = parsed
			}

			var only model.TransactionType
			if typ != "" {
				parsed, err := model.ParseTransactionType(typ)
				if err != nil {
					return friendly(err)
				}
				only = parsed
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			summary, err := s.ledger.Summary(ctx, period)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}
			switch only {
			case model.TypeExpense:
				summary.Income = nil
			case model.TypeIncome:
				summary.Expenses = nil
			}
			return cli.RenderSummary(cmd.OutOrStdout(), summary, s.settings.Currency)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Period as YYYY-MM or YYYY (default: current month)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Summarize a whole year")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only the expense or income breakdown")
	cmd.MarkFlagsMutuallyExclusive("month", "year")

	return cmd
}
