package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/config"
	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/storage"
	"github.com/spf13/cobra"
)

// ledgerOptions lets tests pin the clock and ids.
var ledgerOptions []ledger.Option

// initStorage opens and migrates the configured database.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// session is an open database plus the ledger on top of it.
type session struct {
	store    *storage.SQLiteStorage
	ledger   *ledger.Ledger
	settings model.AppSettings
}

// openSession opens storage, builds the ledger and applies the saved theme.
// Callers must Close the session.
func openSession(ctx context.Context) (*session, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	l := ledger.New(store, ledgerOptions...)
	settings, err := l.Settings(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	cli.ApplyTheme(settings.Theme)

	return &session{store: store, ledger: l, settings: settings}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// autoSnapshot saves the database before a destructive operation.
// Failure is logged, not fatal.
func (s *session) autoSnapshot(ctx context.Context, w io.Writer, operation string) {
	manager, err := s.store.NewSnapshotManager()
	if err != nil {
		slog.Warn("Snapshots unavailable", "error", err)
		return
	}
	info, err := manager.Auto(ctx, operation)
	if err != nil {
		slog.Warn("Failed to create automatic snapshot", "operation", operation, "error", err)
		return
	}
	fmt.Fprintln(w, cli.FormatInfo("Snapshot saved: "+info.ID))
}

// parseDate reads "YYYY-MM-DD" in local time. Empty means unset.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return time.Time{}, nil
	case "today":
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation(model.DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s), err)
	}
	return t, nil
}

// confirm asks on the command's streams unless force is set.
func confirm(cmd *cobra.Command, force bool, question string) (bool, error) {
	if force {
		return true, nil
	}
	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	return cli.Confirm(cmd.Context(), reader, cmd.OutOrStdout(), question)
}

// friendly maps domain errors to messages worth showing as-is.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	return common.NewUserError(cli.FormatError(err.Error()), err)
}
