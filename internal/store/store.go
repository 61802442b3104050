// Package store is the embedded record store. Records live in an in-memory
// SQLite database, one table per record kind, and the whole database image
// is written to a durable ByteStore after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"medicore/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedFunc fills a freshly created store. It runs inside one transaction
// with persistence suspended; the result is flushed once afterwards.
type SeedFunc func(ctx context.Context, h Handle) error

type Options struct {
	// Persister is optional; without it the store is memory only.
	Persister *Persister
	Seed      SeedFunc
	Log       *logrus.Logger
}

// Store owns the embedded database. It is opened once at startup, shared by
// every component and closed at shutdown. Mutations are applied and flushed
// under one write lock, so flushes reach the backend in call order.
type Store struct {
	mu        sync.RWMutex
	db        *gorm.DB
	persister *Persister
	seed      SeedFunc
	log       *logrus.Logger

	// recovery holds the ErrStoreCorrupt condition found at startup, if any.
	recovery error
}

// Open restores the store from the persister, or creates and seeds a new one
// when no snapshot exists. An unreadable snapshot is quarantined and replaced
// by a fresh seed; the condition is kept and reported by Recovery. A snapshot
// written by a newer schema is left alone and Open fails.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s := &Store{
		persister: opts.Persister,
		seed:      opts.Seed,
		log:       opts.Log,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	if s.persister != nil {
		image, err := s.persister.Load(ctx)
		switch {
		case errors.Is(err, ErrSnapshotNotFound):
			s.log.Info("No store snapshot found, creating a new store")
		case err != nil:
			return nil, fmt.Errorf("load store snapshot: %w", err)
		default:
			db, err := openImage(ctx, image, s.log)
			if err == nil {
				s.db = db
				s.log.Infof("Store snapshot restored (%d bytes)", len(image))
				return s, nil
			}
			if errors.Is(err, ErrSchemaTooNew) {
				return nil, fmt.Errorf("open store snapshot: %w", err)
			}
			s.recovery = err
			s.log.Errorf("Store snapshot is unreadable, re-seeding a new store, previous data is lost: %+v", err)
			if qErr := s.persister.Quarantine(ctx, image); qErr != nil {
				s.log.Warnf("Failed to quarantine corrupt snapshot: %+v", qErr)
			}
		}
	}

	db, err := openFresh(ctx, s.seed, s.log)
	if err != nil {
		return nil, err
	}
	s.db = db
	if err := s.flushLocked(ctx, "seed"); err != nil {
		s.log.Errorf("Failed to persist seeded store: %+v", err)
	}
	return s, nil
}

// Recovery returns the corruption found at startup, or nil.
func (s *Store) Recovery() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recovery
}

// Close releases the database. The store cannot be used afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := database.Close(s.db)
	s.db = nil
	return err
}

// GetAll returns every record of table in insertion order.
func (s *Store) GetAll(ctx context.Context, table string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return tableSet{db: s.db}.GetAll(ctx, table)
}

// Get returns one record, or nil, nil when the id is absent.
func (s *Store) Get(ctx context.Context, table, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return tableSet{db: s.db}.Get(ctx, table, id)
}

// Upsert inserts or replaces the record stored under id, then persists the
// store. A *PersistError means the write is visible but not yet durable.
func (s *Store) Upsert(ctx context.Context, table, id string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	if err := (tableSet{db: s.db}).Upsert(ctx, table, id, record); err != nil {
		return err
	}
	return s.flushLocked(ctx, "upsert "+table)
}

// Delete removes the record stored under id, then persists the store.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	if err := (tableSet{db: s.db}).Delete(ctx, table, id); err != nil {
		return err
	}
	return s.flushLocked(ctx, "delete "+table)
}

// Batch applies fn in a single transaction and persists once. Nothing is
// applied when fn fails.
func (s *Store) Batch(ctx context.Context, fn func(h Handle) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tableSet{db: tx})
	})
	if err != nil {
		return err
	}
	return s.flushLocked(ctx, "batch")
}

// ExportSnapshot returns the binary image of the entire store.
func (s *Store) ExportSnapshot(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return serialize(ctx, s.db)
}

// ImportSnapshot replaces the whole store with the content of image. The
// image is validated before anything is replaced; on error the current
// content is untouched. A *PersistError means the import is live in memory
// but not yet durable.
func (s *Store) ImportSnapshot(ctx context.Context, image []byte) error {
	db, err := openImage(ctx, image, s.log)
	if err != nil {
		return err
	}
	return s.replace(ctx, db, "import")
}

// Reset discards every record and seeds the store again.
func (s *Store) Reset(ctx context.Context) error {
	db, err := openFresh(ctx, s.seed, s.log)
	if err != nil {
		return err
	}
	return s.replace(ctx, db, "reset")
}

func (s *Store) replace(ctx context.Context, db *gorm.DB, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		database.Close(db)
		return ErrClosed
	}

	old := s.db
	s.db = db
	s.recovery = nil
	if err := database.Close(old); err != nil {
		s.log.Warnf("Failed to close replaced store database: %+v", err)
	}
	s.log.Infof("Store content replaced by %s", op)
	return s.flushLocked(ctx, op)
}

// flushLocked writes the current image to the persister. Callers hold mu.
func (s *Store) flushLocked(ctx context.Context, op string) error {
	if s.persister == nil {
		return nil
	}
	image, err := serialize(ctx, s.db)
	if err == nil {
		err = s.persister.Save(ctx, image)
	}
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrStorageQuotaExceeded) {
		s.log.Errorf("Store snapshot exceeds storage quota, changes are not persisted: %+v", err)
	} else {
		s.log.Errorf("Failed to persist store snapshot after %s: %+v", op, err)
	}
	return &PersistError{Op: op, Err: err}
}
