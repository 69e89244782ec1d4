// Package service defines the contracts between the ledger and its backends.
package service

import (
	"context"
	"encoding/json"
)

// Logical keys under which the ledger keeps its collections.
const (
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeySettings     = "settings"
)

// AllKeys lists every key the ledger writes.
var AllKeys = []string{KeyTransactions, KeyCategories, KeySettings}

// Store is a durable map from string keys to JSON documents.
// Values are always written whole; there are no partial updates.
type Store interface {
	// Get returns the stored value. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value json.RawMessage, ok bool, err error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Remove(ctx context.Context, key string) error
	// ReplaceAll writes every entry atomically: either all land or none do.
	ReplaceAll(ctx context.Context, values map[string]json.RawMessage) error
	Close() error
}
