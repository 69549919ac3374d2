package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/api/handler"
	"github.com/medilink/directory/internal/core/ports"
	"github.com/medilink/directory/internal/infrastructure/config"
	badgerstore "github.com/medilink/directory/internal/infrastructure/db/badger"
	mongostore "github.com/medilink/directory/internal/infrastructure/db/mongo"
	redisstore "github.com/medilink/directory/internal/infrastructure/db/redis"
	"github.com/medilink/directory/internal/infrastructure/kv"
	"github.com/medilink/directory/internal/infrastructure/storage/localstore"
)

const redisKeyPrefix = "directory:"

// backends holds the opened storage and what is needed to probe and close it.
type backends struct {
	sessions    ports.SessionStore
	credentials ports.CredentialStore
	health      map[string]handler.Pinger
	closers     []func(context.Context) error
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *backends, err error) {
	b := &backends{health: make(map[string]handler.Pinger)}
	defer func() {
		if err != nil {
			b.close(log)
		}
	}()

	var store kv.Store
	switch cfg.Storage.Backend {
	case config.StorageBadger:
		db, err := badgerstore.Open(badgerstore.Config{Dir: cfg.Storage.BadgerDir}, log)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return db.Close() })
		b.health["badger"] = db
		store = db
	case config.StorageRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		rkv := redisstore.NewKV(client, redisKeyPrefix)
		b.closers = append(b.closers, func(context.Context) error { return rkv.Close() })
		b.health["redis"] = rkv
		store = rkv
	case config.StorageMemory:
		mem := kv.NewMemory()
		b.health["memory"] = mem
		store = mem
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}

	b.sessions = localstore.NewSessionStore(store, cfg.Storage.Namespace)

	switch cfg.Storage.CredentialBackend {
	case config.CredentialsKV:
		b.credentials = localstore.NewCredentialStore(store, cfg.Storage.Namespace)
	case config.CredentialsMongo:
		conn, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, conn.Close)
		b.health["mongodb"] = conn

		creds := mongostore.NewCredentialStore(conn.Database())
		if err := creds.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		b.credentials = creds
	default:
		return nil, fmt.Errorf("unsupported credential backend %q", cfg.Storage.CredentialBackend)
	}

	return b, nil
}

// close releases backends in reverse order of opening.
func (b *backends) close(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("failed to close storage backend")
		}
	}
	b.closers = nil
}
