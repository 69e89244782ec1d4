package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrInvalidJSON = errors.New("value is not valid JSON")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEntry checks a key and the document about to be stored under it.
func validateEntry(key string, value json.RawMessage) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: key %q", ErrInvalidJSON, key)
	}
	return nil
}
