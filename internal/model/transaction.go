// Package model holds the ledger's domain types.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are plain JSON numbers in backups and storage.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType is the direction of money for a transaction.
type TransactionType string

const (
	// TypeExpense is money leaving the user's pocket.
	TypeExpense TransactionType = "expense"
	// TypeIncome is money coming in.
	TypeIncome TransactionType = "income"
)

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// Transaction is a single recorded movement of money.
// The category is a snapshot taken when the transaction was created, so later
// edits to the category list never rewrite history.
type Transaction struct {
	Date     time.Time       `json:"date"`
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	ID       string          `json:"id"`
	Type     TransactionType `json:"type"`
	Note     string          `json:"note,omitempty"`
}

// DayKey is the calendar day of the transaction as "YYYY-MM-DD".
func (t Transaction) DayKey() string {
	return t.Date.Format(DayLayout)
}

// PeriodKey is the year-month of the transaction as "YYYY-MM".
func (t Transaction) PeriodKey() string {
	return t.Date.Format(PeriodLayout)
}

// SignedAmount is the amount with expenses negated.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Fingerprint creates a hash for duplicate detection during imports.
func (t Transaction) Fingerprint() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s",
		t.DayKey(),
		t.Type,
		t.Amount.StringFixed(2),
		t.Category.ID,
		t.Note)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Layouts used for grouping keys.
const (
	DayLayout    = "2006-01-02"
	PeriodLayout = "2006-01"
)
