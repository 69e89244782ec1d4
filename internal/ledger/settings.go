package ledger

import (
	"context"
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/service"
	"github.com/Veraticus/daily-ledger/internal/storage"
	"github.com/Veraticus/daily-ledger/internal/verification"
)

// Settings loads the user's settings, falling back to the defaults.
func (l *Ledger) Settings(ctx context.Context) (model.AppSettings, error) {
	settings, err := storage.GetJSON(ctx, l.store, service.KeySettings, model.DefaultSettings())
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.WithDefaults(), nil
}

// UpdateSettings applies fn to the current settings and saves the result if it validates.
func (l *Ledger) UpdateSettings(ctx context.Context, fn func(*model.AppSettings) error) (model.AppSettings, error) {
	settings, err := l.Settings(ctx)
	if err != nil {
		return model.AppSettings{}, err
	}
	if err := fn(&settings); err != nil {
		return model.AppSettings{}, err
	}
	if err := settings.Validate(); err != nil {
		return model.AppSettings{}, err
	}
	if err := storage.SetJSON(ctx, l.store, service.KeySettings, settings); err != nil {
		return model.AppSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	l.logger.Debug("Saved settings",
		"currency", settings.Currency,
		"language", settings.Language,
		"theme", settings.Theme)
	return settings, nil
}

// SetBackupEmail stores a verified backup address.
func (l *Ledger) SetBackupEmail(ctx context.Context, email string) (model.AppSettings, error) {
	addr, err := verification.NormalizeEmail(email)
	if err != nil {
		return model.AppSettings{}, err
	}
	return l.UpdateSettings(ctx, func(s *model.AppSettings) error {
		s.BackupEmail = addr
		return nil
	})
}
