// Package localstore keeps doctor credentials, doctor profiles and the
// session slot as JSON text in a key-value backend, using the keys the web
// client wrote to browser storage.
package localstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/infrastructure/kv"
)

const (
	keyCredentials = "doctorCredentials"
	keyProfiles    = "doctors"
	keySession     = "user"
)

// keyspace resolves record names inside a namespace.
type keyspace struct {
	kv        kv.Store
	namespace string
}

func (k keyspace) key(name string) string {
	return k.namespace + name
}

// load decodes the JSON value stored under name into dst. It reports
// found=false when the key is absent.
func (k keyspace) load(ctx context.Context, name string, dst any) (bool, error) {
	raw, err := k.kv.Get(ctx, k.key(name))
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, domain.NewStorageError("read "+name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, domain.NewStorageError("decode "+name, err)
	}
	return true, nil
}

// save replaces the value under name with the JSON encoding of v in a single
// write.
func (k keyspace) save(ctx context.Context, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return domain.NewStorageError("encode "+name, err)
	}
	if err := k.kv.Set(ctx, k.key(name), raw); err != nil {
		return domain.NewStorageError("write "+name, err)
	}
	return nil
}
