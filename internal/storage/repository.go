package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KVRepository is a string key-value store. Values are opaque to the store.
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Close() error
}
