package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Snapshot errors.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotExists   = errors.New("snapshot already exists")
	ErrInvalidSnapshot  = errors.New("invalid snapshot id")
)

// maxAutoSnapshots is how many automatic snapshots survive cleanup.
const maxAutoSnapshots = 5

const snapshotTimeLayout = "2006-01-02-150405"

// SnapshotManager keeps point-in-time copies of the database next to it.
type SnapshotManager struct {
	storage *SQLiteStorage
	dir     string
	now     func() time.Time
}

// SnapshotInfo describes a stored snapshot.
type SnapshotInfo struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Keys        []string  `json:"keys"`
	FileSize    int64     `json:"file_size"`
	IsAuto      bool      `json:"is_auto"`
}

// NewSnapshotManager stores snapshots in a "snapshots" directory beside the database.
func (s *SQLiteStorage) NewSnapshotManager() (*SnapshotManager, error) {
	if s.dbPath == ":memory:" {
		return nil, errors.New("snapshots need a file-backed database")
	}
	dir := filepath.Join(filepath.Dir(s.dbPath), "snapshots")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create snapshots directory: %w", err)
	}
	return &SnapshotManager{storage: s, dir: dir, now: time.Now}, nil
}

// Create copies the current database under the given id.
// An empty id is replaced by a timestamped one.
func (m *SnapshotManager) Create(ctx context.Context, id, description string) (*SnapshotInfo, error) {
	return m.create(ctx, id, description, false)
}

// Auto takes a snapshot before a destructive operation and prunes old ones.
func (m *SnapshotManager) Auto(ctx context.Context, operation string) (*SnapshotInfo, error) {
	id := m.freeID(fmt.Sprintf("auto-%s-%s", operation, m.now().Format(snapshotTimeLayout)))
	info, err := m.create(ctx, id, "Automatic snapshot before "+operation, true)
	if err != nil {
		return nil, err
	}
	if err := m.prune(ctx); err != nil {
		slog.Warn("Failed to prune automatic snapshots", "error", err)
	}
	return info, nil
}

func (m *SnapshotManager) create(ctx context.Context, id, description string, auto bool) (*SnapshotInfo, error) {
	if id == "" {
		id = m.freeID("snapshot-" + m.now().Format(snapshotTimeLayout))
	}
	if err := validateSnapshotID(id); err != nil {
		return nil, err
	}

	dbPath := m.dbFile(id)
	if _, err := os.Stat(dbPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotExists, id)
	}

	keys, err := m.storage.Keys(ctx)
	if err != nil {
		return nil, err
	}

	// VACUUM INTO cannot take a bound parameter.
	quoted := strings.ReplaceAll(dbPath, "'", "''")
	if _, err := m.storage.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", quoted)); err != nil {
		return nil, fmt.Errorf("failed to copy database: %w", err)
	}

	stat, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	info := &SnapshotInfo{
		ID:          id,
		CreatedAt:   m.now(),
		Description: description,
		Keys:        keys,
		FileSize:    stat.Size(),
		IsAuto:      auto,
	}
	if err := m.saveMetadata(info); err != nil {
		_ = os.Remove(dbPath)
		return nil, err
	}

	slog.Info("Created snapshot", "id", id, "auto", auto, "bytes", info.FileSize)
	return info, nil
}

// List returns every snapshot, newest first.
func (m *SnapshotManager) List(_ context.Context) ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots directory: %w", err)
	}

	snapshots := make([]SnapshotInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}
		info, err := m.loadMetadata(strings.TrimSuffix(entry.Name(), ".meta.json"))
		if err != nil {
			slog.Debug("Skipping unreadable snapshot metadata", "file", entry.Name(), "error", err)
			continue
		}
		snapshots = append(snapshots, *info)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots, nil
}

// Restore replaces the live documents with the ones captured in the snapshot.
// Keys absent from the snapshot are removed.
func (m *SnapshotManager) Restore(ctx context.Context, id string) error {
	if err := validateSnapshotID(id); err != nil {
		return err
	}
	path := m.dbFile(id)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return fmt.Errorf("failed to access snapshot: %w", err)
	}

	values, err := readSnapshot(ctx, path)
	if err != nil {
		return err
	}

	tx, err := m.storage.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv_store`); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	for key, value := range values {
		if err := m.storage.setTx(ctx, tx, key, value); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	slog.Info("Restored snapshot", "id", id, "keys", len(values))
	return nil
}

// Delete removes a snapshot and its metadata.
func (m *SnapshotManager) Delete(_ context.Context, id string) error {
	if err := validateSnapshotID(id); err != nil {
		return err
	}
	if err := os.Remove(m.dbFile(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if err := os.Remove(m.metaFile(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot metadata: %w", err)
	}
	return nil
}

func (m *SnapshotManager) prune(ctx context.Context) error {
	snapshots, err := m.List(ctx)
	if err != nil {
		return err
	}
	autoCount := 0
	for _, s := range snapshots {
		if !s.IsAuto {
			continue
		}
		autoCount++
		if autoCount > maxAutoSnapshots {
			if err := m.Delete(ctx, s.ID); err != nil {
				slog.Debug("Failed to delete old snapshot", "id", s.ID, "error", err)
			}
		}
	}
	return nil
}

// freeID returns base, or base with the first free "-N" suffix when snapshots
// taken within the same second collide.
func (m *SnapshotManager) freeID(base string) string {
	id := base
	for n := 2; ; n++ {
		if _, err := os.Stat(m.dbFile(id)); err != nil {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

func (m *SnapshotManager) dbFile(id string) string {
	return filepath.Join(m.dir, id+".db")
}

func (m *SnapshotManager) metaFile(id string) string {
	return filepath.Join(m.dir, id+".meta.json")
}

func (m *SnapshotManager) saveMetadata(info *SnapshotInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot metadata: %w", err)
	}
	if err := os.WriteFile(m.metaFile(info.ID), data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot metadata: %w", err)
	}
	return nil
}

func (m *SnapshotManager) loadMetadata(id string) (*SnapshotInfo, error) {
	data, err := os.ReadFile(m.metaFile(id))
	if err != nil {
		return nil, err
	}
	var info SnapshotInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func readSnapshot(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM kv_store`)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	defer rows.Close()

	values := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		values[key] = json.RawMessage(value)
	}
	return values, rows.Err()
}

func validateSnapshotID(id string) error {
	if strings.TrimSpace(id) == "" ||
		strings.ContainsAny(id, `/\'";`) ||
		strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidSnapshot, id)
	}
	return nil
}
