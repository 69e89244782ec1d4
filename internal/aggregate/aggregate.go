// Package aggregate derives daily, periodic and per-category views from a
// flat list of transactions. Every function is pure and leaves its input untouched.
package aggregate

import (
	"sort"

	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GroupByDate buckets transactions by calendar day, newest day first.
// Within a day, transactions keep the order they had in the input.
func GroupByDate(txns []model.Transaction) []model.DayData {
	index := make(map[string]int)
	days := make([]model.DayData, 0)

	for _, t := range txns {
		key := t.DayKey()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, model.DayData{
				Date:     key,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			})
		}

		day := &days[i]
		day.Transactions = append(day.Transactions, t)
		switch t.Type {
		case model.TypeIncome:
			day.Income = day.Income.Add(t.Amount)
		case model.TypeExpense:
			day.Expenses = day.Expenses.Add(t.Amount)
		}
	}

	for i := range days {
		days[i].Balance = days[i].Income.Sub(days[i].Expenses)
	}

	// Day keys are zero-padded so lexical order is chronological order.
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})

	return days
}

// FilterByPeriod keeps the transactions whose year-month equals periodKey ("2025-10").
func FilterByPeriod(txns []model.Transaction, periodKey string) []model.Transaction {
	return filter(txns, func(t model.Transaction) bool {
		return t.PeriodKey() == periodKey
	})
}

// FilterByYear keeps the transactions dated in the given year.
func FilterByYear(txns []model.Transaction, year int) []model.Transaction {
	return filter(txns, func(t model.Transaction) bool {
		return t.Date.Year() == year
	})
}

// FilterByType keeps the transactions of the given type.
func FilterByType(txns []model.Transaction, typ model.TransactionType) []model.Transaction {
	return filter(txns, func(t model.Transaction) bool {
		return t.Type == typ
	})
}

func filter(txns []model.Transaction, keep func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0)
	for _, t := range txns {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// SummarizeByCategory totals transactions per category id, largest first.
// Callers usually pass a single transaction type.
func SummarizeByCategory(txns []model.Transaction) []model.CategorySummary {
	index := make(map[string]int)
	summaries := make([]model.CategorySummary, 0)
	total := decimal.Zero

	for _, t := range txns {
		i, ok := index[t.Category.ID]
		if !ok {
			i = len(summaries)
			index[t.Category.ID] = i
			summaries = append(summaries, model.CategorySummary{
				Category: t.Category,
				Amount:   decimal.Zero,
			})
		}
		summaries[i].Amount = summaries[i].Amount.Add(t.Amount)
		summaries[i].Transactions = append(summaries[i].Transactions, t)
		total = total.Add(t.Amount)
	}

	for i := range summaries {
		if total.IsZero() {
			summaries[i].Percentage = 0
			continue
		}
		summaries[i].Percentage = summaries[i].Amount.Div(total).Mul(hundred).InexactFloat64()
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Amount.GreaterThan(summaries[j].Amount)
	})

	return summaries
}

// PeriodOverPeriodChange is the percentage change from previous to current.
// With nothing to compare against, any positive value counts as +100%.
func PeriodOverPeriodChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
}

// Totals sums income and expenses for a set of transactions.
func Totals(txns []model.Transaction, period string) model.PeriodTotals {
	totals := model.PeriodTotals{
		Period:   period,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, t := range txns {
		switch t.Type {
		case model.TypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case model.TypeExpense:
			totals.Expenses = totals.Expenses.Add(t.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expenses)
	return totals
}

// Comparison holds the change of each total against the previous period.
type Comparison struct {
	Income   float64
	Expenses float64
	Balance  float64
}

// Compare applies PeriodOverPeriodChange to income, expenses and balance.
func Compare(current, previous model.PeriodTotals) Comparison {
	return Comparison{
		Income:   PeriodOverPeriodChange(current.Income, previous.Income),
		Expenses: PeriodOverPeriodChange(current.Expenses, previous.Expenses),
		Balance:  PeriodOverPeriodChange(current.Balance, previous.Balance),
	}
}
