// Package ledger implements the user-facing operations on top of a service.Store.
// Every mutation loads a whole collection, changes it and writes it back.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/service"
	"github.com/Veraticus/daily-ledger/internal/storage"
	"github.com/google/uuid"
)

// Ledger is the application service used by the CLI and the TUI.
type Ledger struct {
	store  service.Store
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used for defaults and export dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator sets the id source for new transactions and categories.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// New creates a Ledger backed by store.
func New(store service.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: common.Component("ledger"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the ledger's current time.
func (l *Ledger) Now() time.Time {
	return l.now()
}

// Transactions loads every transaction in stored order.
func (l *Ledger) Transactions(ctx context.Context) ([]model.Transaction, error) {
	txns, err := storage.GetJSON(ctx, l.store, service.KeyTransactions, []model.Transaction{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	return txns, nil
}

// SaveTransactions replaces the whole transaction collection.
func (l *Ledger) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	if txns == nil {
		txns = []model.Transaction{}
	}
	if err := storage.SetJSON(ctx, l.store, service.KeyTransactions, txns); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// NewTransaction is the input for AddTransaction.
type NewTransaction struct {
	Date       time.Time
	Type       model.TransactionType
	Amount     string
	CategoryID string
	Note       string
}

// AddTransaction validates input, snapshots the category and appends the result.
func (l *Ledger) AddTransaction(ctx context.Context, in NewTransaction) (model.Transaction, error) {
	if !in.Type.Valid() {
		return model.Transaction{}, fmt.Errorf("%w: %q", model.ErrInvalidType, in.Type)
	}
	amount, err := model.ParseAmount(in.Amount)
	if err != nil {
		return model.Transaction{}, err
	}
	if in.CategoryID == "" {
		return model.Transaction{}, common.ErrMissingCategory
	}

	cat, err := l.Category(ctx, in.CategoryID)
	if err != nil {
		return model.Transaction{}, err
	}
	if len(model.CategoriesFor([]model.Category{cat}, in.Type)) == 0 {
		return model.Transaction{}, fmt.Errorf("%w: %s for %s", common.ErrWrongCategory, cat.ID, in.Type)
	}

	date := in.Date
	if date.IsZero() {
		date = l.now()
	}

	txn := model.Transaction{
		ID:       l.newID(),
		Date:     date,
		Type:     in.Type,
		Amount:   amount,
		Category: cat,
		Note:     in.Note,
	}

	txns, err := l.Transactions(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := l.SaveTransactions(ctx, append(txns, txn)); err != nil {
		return model.Transaction{}, err
	}

	l.logger.Info("Added transaction",
		"id", txn.ID,
		"type", txn.Type,
		"amount", txn.Amount.StringFixed(2),
		"category", cat.ID)
	return txn, nil
}

// DeleteTransaction removes the transaction with the given id.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) (model.Transaction, error) {
	txns, err := l.Transactions(ctx)
	if err != nil {
		return model.Transaction{}, err
	}

	for i, t := range txns {
		if t.ID != id {
			continue
		}
		kept := append(txns[:i:i], txns[i+1:]...)
		if err := l.SaveTransactions(ctx, kept); err != nil {
			return model.Transaction{}, err
		}
		l.logger.Info("Deleted transaction", "id", id)
		return t, nil
	}
	return model.Transaction{}, fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
}

// Transaction returns a single transaction by id.
func (l *Ledger) Transaction(ctx context.Context, id string) (model.Transaction, error) {
	txns, err := l.Transactions(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	for _, t := range txns {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
}

// ImportTransactions appends txns, skipping any whose fingerprint is already
// stored or repeated in the batch. It returns the number added.
func (l *Ledger) ImportTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	existing, err := l.Transactions(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t.Fingerprint()] = true
	}

	added := 0
	for _, t := range txns {
		fp := t.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		if t.ID == "" {
			t.ID = l.newID()
		}
		existing = append(existing, t)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := l.SaveTransactions(ctx, existing); err != nil {
		return 0, err
	}
	l.logger.Info("Imported transactions", "added", added, "skipped", len(txns)-added)
	return added, nil
}

// Reset deletes every stored collection. Defaults apply afterwards.
func (l *Ledger) Reset(ctx context.Context) error {
	for _, key := range service.AllKeys {
		if err := l.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	l.logger.Info("Cleared all data")
	return nil
}
