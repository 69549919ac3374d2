package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/infrastructure/kv"
)

// Config captures the settings for opening a Badger database.
type Config struct {
	// Dir is the data directory. Ignored when InMemory is set.
	Dir      string
	InMemory bool
}

// Store is a kv.Store backed by an embedded Badger database.
type Store struct {
	db *badgerdb.DB
}

// Open opens (or creates) the database described by cfg. Badger's internal
// log output is routed to log.
func Open(cfg Config, log zerolog.Logger) (*Store, error) {
	opts := badgerdb.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(logBridge{log: log.With().Str("component", "badger").Logger()})

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %q: %w", key, err)
	}
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %q: %w", key, err)
	}
	return nil
}

// Ping reports an error once the database has been closed.
func (s *Store) Ping(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// logBridge adapts zerolog to badger.Logger.
type logBridge struct {
	log zerolog.Logger
}

func (b logBridge) Errorf(format string, args ...interface{}) {
	b.log.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b logBridge) Warningf(format string, args ...interface{}) {
	b.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b logBridge) Infof(format string, args ...interface{}) {
	b.log.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b logBridge) Debugf(format string, args ...interface{}) {
	b.log.Trace().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
