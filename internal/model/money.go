package model

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Amount errors.
var (
	ErrMissingAmount = errors.New("amount is required")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseAmount parses a positive amount typed by the user.
// Both "12.34" and "12,34" are accepted; extra decimals are rounded half-up to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrMissingAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if r != '.' && !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if s == "." {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrMissingAmount
	}
	return d, nil
}

// FormatCurrency renders an amount like "R$ 1234,56".
// Unknown currency codes fall back to the real's symbol.
func FormatCurrency(amount decimal.Decimal, code string) string {
	symbol := "R$"
	if c, ok := LookupCurrency(code); ok {
		symbol = c.Symbol
	}
	return symbol + " " + strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
