// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store is the key-value port every stateful component operates on. Values
// are JSON-encoded records; the interface is deliberately narrow so it can
// be backed by Postgres, Redis, or an in-process map interchangeably.
type Store interface {
	// Get returns the raw value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the raw value for key, creating or replacing it.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

var (
	// ErrNotFound indicates the key has no stored value.
	ErrNotFound = errors.New("store: key not found")

	// ErrBadRecord indicates a stored value that cannot be decoded.
	ErrBadRecord = errors.New("store: corrupt record")

	// ErrConflict indicates a versioned write lost the race to a
	// concurrent writer of the same slot.
	ErrConflict = errors.New("store: revision conflict")
)

// GetJSON loads and decodes the record under key into dest.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrBadRecord, key, err)
	}
	return nil
}

// SetJSON encodes value and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode record for key %q: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}

// LoadJSON is GetJSON with absent-tolerant semantics: a missing slot and a
// corrupt slot both report found=false with no error, so callers can fall
// back to a zero value the way they would for a never-written key.
func LoadJSON(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	err := GetJSON(ctx, s, key, dest)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrBadRecord) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
