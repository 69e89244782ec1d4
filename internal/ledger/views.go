package ledger

import (
	"context"
	"time"

	"github.com/Veraticus/daily-ledger/internal/aggregate"
	"github.com/Veraticus/daily-ledger/internal/calendar"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/shopspring/decimal"
)

// MonthView is everything the calendar screen shows for one month.
type MonthView struct {
	Days   map[string]model.DayData
	Totals model.PeriodTotals
	Cells  []calendar.Cell
	Period aggregate.Period
}

// Summary is the period report: totals, comparison and category breakdowns.
type Summary struct {
	Changes  aggregate.Comparison
	Current  model.PeriodTotals
	Previous model.PeriodTotals
	Period   aggregate.Period
	Expenses []model.CategorySummary
	Income   []model.CategorySummary
	Days     []model.DayData
}

// Month builds the calendar view. monthIndex is zero-based.
func (l *Ledger) Month(ctx context.Context, year, monthIndex int) (MonthView, error) {
	txns, err := l.Transactions(ctx)
	if err != nil {
		return MonthView{}, err
	}

	first := time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC)
	period := aggregate.MonthOf(first)
	inPeriod := period.Filter(txns)

	days := make(map[string]model.DayData)
	for _, day := range aggregate.GroupByDate(inPeriod) {
		days[day.Date] = day
	}

	return MonthView{
		Period: period,
		Cells:  calendar.MonthGrid(year, monthIndex),
		Days:   days,
		Totals: aggregate.Totals(inPeriod, period.Key()),
	}, nil
}

// Day returns the transactions recorded on date's calendar day.
// A day without transactions yields zero totals.
func (l *Ledger) Day(ctx context.Context, date time.Time) (model.DayData, error) {
	txns, err := l.Transactions(ctx)
	if err != nil {
		return model.DayData{}, err
	}

	key := date.Format(model.DayLayout)
	for _, day := range aggregate.GroupByDate(txns) {
		if day.Date == key {
			return day, nil
		}
	}
	return model.DayData{
		Date:         key,
		Income:       decimal.Zero,
		Expenses:     decimal.Zero,
		Balance:      decimal.Zero,
		Transactions: []model.Transaction{},
	}, nil
}

// Summary reports on a month or a year and compares it with the period before.
func (l *Ledger) Summary(ctx context.Context, period aggregate.Period) (Summary, error) {
	txns, err := l.Transactions(ctx)
	if err != nil {
		return Summary{}, err
	}

	current := period.Filter(txns)
	previous := period.Previous().Filter(txns)

	curTotals := aggregate.Totals(current, period.Key())
	prevTotals := aggregate.Totals(previous, period.Previous().Key())

	return Summary{
		Period:   period,
		Current:  curTotals,
		Previous: prevTotals,
		Changes:  aggregate.Compare(curTotals, prevTotals),
		Expenses: aggregate.SummarizeByCategory(aggregate.FilterByType(current, model.TypeExpense)),
		Income:   aggregate.SummarizeByCategory(aggregate.FilterByType(current, model.TypeIncome)),
		Days:     aggregate.GroupByDate(current),
	}, nil
}
