package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/backup"
	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/service"
)

// Export gathers the full state into a backup document.
func (l *Ledger) Export(ctx context.Context) (backup.Data, error) {
	txns, err := l.Transactions(ctx)
	if err != nil {
		return backup.Data{}, err
	}
	cats, err := l.Categories(ctx)
	if err != nil {
		return backup.Data{}, err
	}
	settings, err := l.Settings(ctx)
	if err != nil {
		return backup.Data{}, err
	}

	return backup.Data{
		Transactions: txns,
		Categories:   cats,
		Settings:     settings,
		ExportDate:   l.now(),
	}, nil
}

// Import replaces transactions, categories and settings wholesale.
// Nothing is written unless all three encode successfully.
func (l *Ledger) Import(ctx context.Context, data backup.Data) error {
	if data.Transactions == nil {
		data.Transactions = []model.Transaction{}
	}
	if data.Categories == nil {
		data.Categories = []model.Category{}
	}
	data.Settings = data.Settings.WithDefaults()
	if err := data.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: settings: %w", common.ErrInvalidBackup, err)
	}

	values := make(map[string]json.RawMessage, len(service.AllKeys))
	for key, v := range map[string]any{
		service.KeyTransactions: data.Transactions,
		service.KeyCategories:   data.Categories,
		service.KeySettings:     data.Settings,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		values[key] = raw
	}

	if err := l.store.ReplaceAll(ctx, values); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	l.logger.Info("Restored backup",
		"transactions", len(data.Transactions),
		"categories", len(data.Categories),
		"exported_at", data.ExportDate)
	return nil
}
