package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the calendar browser and blocks until the user quits.
func Run(ctx context.Context, l Ledger, opts ...Option) error {
	if l == nil {
		return fmt.Errorf("ledger is required")
	}

	program := tea.NewProgram(
		New(ctx, l, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
