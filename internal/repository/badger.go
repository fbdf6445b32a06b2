package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/vanshika/routeplanner/internal/domain"
)

const (
	routeKeyPrefix  = "route/"
	sequenceKey     = "seq/route"
	sequenceLease   = 64
	routeKeyPadding = 20
)

// BadgerConfig configures the embedded BadgerDB backend.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything in RAM; used by tests.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// Logger receives badger's internal logs. Nil silences them.
	Logger *slog.Logger
}

// BadgerStore keeps routes in BadgerDB under sequence-numbered keys, so prefix
// iteration yields append order.
type BadgerStore struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *slog.Logger
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBadgerStore opens (or creates) a BadgerDB-backed store.
func OpenBadgerStore(cfg BadgerConfig, logger *slog.Logger) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceLease)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("acquire route sequence: %w", err)
	}

	return &BadgerStore{
		db:     db,
		seq:    seq,
		logger: logger.With("store", "badger"),
	}, nil
}

func (s *BadgerStore) Append(_ context.Context, edge domain.Edge) error {
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next route sequence: %w", err)
	}
	key := routeKey(n)
	value := []byte(EncodeRecord(edge))

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	}); err != nil {
		return fmt.Errorf("append route %s->%s: %w", edge.Origin, edge.Destination, err)
	}
	return nil
}

func (s *BadgerStore) LoadAll(ctx context.Context) ([]domain.Edge, error) {
	var edges []domain.Edge
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(routeKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", item.Key(), err)
			}
			edge, err := DecodeRecord(string(raw))
			if err != nil {
				s.logger.WarnContext(ctx, "skipping malformed route record", "key", string(item.KeyCopy(nil)), "record", string(raw), "error", err)
				continue
			}
			edges = append(edges, edge)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	return edges, nil
}

// Ping fails once the database is closed.
func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

func (s *BadgerStore) Close(context.Context) error {
	if err := s.seq.Release(); err != nil {
		s.logger.Warn("releasing route sequence failed", "error", err)
	}
	return s.db.Close()
}

// routeKey zero-pads n so lexicographic key order matches numeric order.
func routeKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%0*d", routeKeyPrefix, routeKeyPadding, n))
}
