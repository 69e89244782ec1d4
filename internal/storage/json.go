package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/service"
)

// GetJSON decodes the document under key into a T.
// A missing key yields def without error.
func GetJSON[T any](ctx context.Context, store service.Store, key string, def T) (T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return def, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return out, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON[T any](ctx context.Context, store service.Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
