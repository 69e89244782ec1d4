// Package calendar lays out month views as Sunday-first weeks.
package calendar

import (
	"time"

	"github.com/Veraticus/daily-ledger/internal/model"
)

// DaysPerWeek is the width of a calendar row.
const DaysPerWeek = 7

// Cell is one square of the month grid.
type Cell struct {
	Date    time.Time
	InMonth bool
}

// Key is the cell's day as "YYYY-MM-DD", matching transaction day keys.
func (c Cell) Key() string {
	return c.Date.Format(model.DayLayout)
}

// MonthGrid returns the cells for a month view. monthIndex is zero-based
// (0 = January) and out-of-range values roll into neighbouring years.
// The grid starts on a Sunday and its length is always a multiple of seven.
func MonthGrid(year, monthIndex int) []Cell {
	first := time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	leading := int(first.Weekday())
	days := last.Day()
	total := leading + days
	if rem := total % DaysPerWeek; rem != 0 {
		total += DaysPerWeek - rem
	}

	cells := make([]Cell, 0, total)
	start := first.AddDate(0, 0, -leading)
	for i := 0; i < total; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{
			Date:    d,
			InMonth: d.Month() == first.Month(),
		})
	}
	return cells
}

// GridFor returns the grid of the month containing t.
func GridFor(t time.Time) []Cell {
	return MonthGrid(t.Year(), int(t.Month())-1)
}

// Weeks splits a grid into rows of seven cells.
func Weeks(cells []Cell) [][]Cell {
	weeks := make([][]Cell, 0, len(cells)/DaysPerWeek)
	for i := 0; i+DaysPerWeek <= len(cells); i += DaysPerWeek {
		weeks = append(weeks, cells[i:i+DaysPerWeek])
	}
	return weeks
}

// WeekdayLabels are the column headings, Sunday first.
var WeekdayLabels = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
