package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested key has no stored value.
var ErrNotFound = errors.New("record not found")

// Store is a durable key-value contract used for session and per-user
// archive records. Implementations must return ErrNotFound for missing
// keys so callers can distinguish absence from infrastructure failure.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
