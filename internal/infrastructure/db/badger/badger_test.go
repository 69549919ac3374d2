package badger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medilink/directory/internal/infrastructure/kv"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := openInMemory(t)

	_, err := s.Get(ctx, "user")
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"admin"}`)))
	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"admin"}`, string(got))

	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"guest"}`)))
	got, err = s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"guest"}`, string(got))

	require.NoError(t, s.Delete(ctx, "user"))
	require.NoError(t, s.Delete(ctx, "user"))
	_, err = s.Get(ctx, "user")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStore_ExactBytes(t *testing.T) {
	ctx := context.Background()
	s := openInMemory(t)

	value := []byte("Affilié é中 \x00 end")
	require.NoError(t, s.Set(ctx, "k", value))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestStore_PingAfterClose(t *testing.T) {
	s, err := Open(Config{InMemory: true}, zerolog.Nop())
	require.NoError(t, err)

	assert.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}

func TestStore_ImplementsKV(t *testing.T) {
	var _ kv.Store = (*Store)(nil)
	var _ kv.Pinger = (*Store)(nil)
}
