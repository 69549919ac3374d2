// Package kv defines the key-value contract shared by the storage backends.
// Values are opaque byte strings; keys are namespaced by the caller.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a flat key-value store. Set and Delete replace a single value
// and are atomic per key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete succeeds when the key is absent.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
