// Package kv provides a small byte-oriented key/value store with in-memory
// and Redis backends.
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("kv: key not found")

// Store defines key/value operations. A ttl <= 0 means the key never expires.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// Key joins a prefix and an id with a colon.
func Key(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}
