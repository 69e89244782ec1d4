// Package testutil provides shared fixtures for the ledger's tests.
package testutil

import (
	"context"
	"strconv"
	"testing"

	"github.com/Veraticus/daily-ledger/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store that is closed
// when the test finishes.
//
// Example:
//
//	store := testutil.SetupTestStore(t)
//	l := ledger.New(store)
func SetupTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
