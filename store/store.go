// Package store provides the key/value backends used to persist settings and cached translations.
//
// Every record is a single serialized string read and written wholesale.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// KV is a string key/value store.
type KV interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// Error wraps a backend failure with the operation and key involved.
type Error struct {
	Op    string // "get" or "set"
	Key   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
