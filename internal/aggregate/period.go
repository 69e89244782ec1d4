package aggregate

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/daily-ledger/internal/model"
)

// Bounds for year navigation.
const (
	MinYear = 2000
	MaxYear = 2100
)

// ErrInvalidPeriod is returned for unparseable or out-of-range periods.
var ErrInvalidPeriod = errors.New("invalid period")

// Period is a calendar month, or a whole year when Month is zero.
type Period struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month period containing t.
func MonthOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// YearOf returns the year period containing t.
func YearOf(t time.Time) Period {
	return Period{Year: t.Year()}
}

// ParsePeriod accepts "2025-10" for a month or "2025" for a year.
func ParsePeriod(s string) (Period, error) {
	if t, err := time.Parse(model.PeriodLayout, s); err == nil {
		p := MonthOf(t)
		return p, p.validate()
	}
	if t, err := time.Parse("2006", s); err == nil {
		p := YearOf(t)
		return p, p.validate()
	}
	return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

func (p Period) validate() error {
	if p.Year < MinYear || p.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidPeriod, p.Year, MinYear, MaxYear)
	}
	return nil
}

// IsYear reports whether p spans a whole year.
func (p Period) IsYear() bool {
	return p.Month == 0
}

// Key is "2025-10" for months and "2025" for years.
func (p Period) Key() string {
	if p.IsYear() {
		return fmt.Sprintf("%04d", p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Previous is the period immediately before p.
func (p Period) Previous() Period {
	if p.IsYear() {
		return Period{Year: p.Year - 1}
	}
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Next is the period immediately after p.
func (p Period) Next() Period {
	if p.IsYear() {
		return Period{Year: p.Year + 1}
	}
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Filter keeps the transactions that fall inside p.
func (p Period) Filter(txns []model.Transaction) []model.Transaction {
	if p.IsYear() {
		return FilterByYear(txns, p.Year)
	}
	return FilterByPeriod(txns, p.Key())
}

// Label renders the period for headings, e.g. "October 2025".
func (p Period) Label() string {
	if p.IsYear() {
		return p.Key()
	}
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}
