package tui

import (
	"context"
	"time"

	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/tui/themes"
)

// Ledger is what the browser needs from the ledger service.
type Ledger interface {
	Month(ctx context.Context, year, monthIndex int) (ledger.MonthView, error)
	Settings(ctx context.Context) (model.AppSettings, error)
	DeleteTransaction(ctx context.Context, id string) (model.Transaction, error)
}

// Config holds TUI configuration.
type Config struct {
	Now    func() time.Time
	Theme  *themes.Theme
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Now:    time.Now,
		Width:  80,
		Height: 24,
	}
}

// WithTheme forces a theme instead of the one in the user's settings.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = &theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock sets the source of "today".
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
