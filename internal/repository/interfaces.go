package repository

import (
	"context"
	"errors"
)

// ErrStorage is matched by every error returned from a KeyValueStore
var ErrStorage = errors.New("storage error")

// StorageError wraps a persistence failure
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is matches ErrStorage
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// KeyValueStore persists small string values under string keys
type KeyValueStore interface {
	// Get returns the value for key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error
	Close() error
}
