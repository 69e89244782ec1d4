package model

import "github.com/shopspring/decimal"

// DayData aggregates the transactions recorded on one calendar day.
type DayData struct {
	Date         string
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Balance      decimal.Decimal
	Transactions []Transaction
}

// CategorySummary is one slice of a category breakdown.
type CategorySummary struct {
	Category     Category
	Amount       decimal.Decimal
	Transactions []Transaction
	Percentage   float64
}

// PeriodTotals sums income and expenses over a month or a year.
type PeriodTotals struct {
	Period   string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}
