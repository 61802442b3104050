package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ByteStore is a durable key to blob mapping with overwrite semantics.
// Load returns ErrSnapshotNotFound when nothing is stored under key.
type ByteStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// DefaultKey is the storage key the snapshot is kept under.
const DefaultKey = "sqlite_db_binary"

const corruptSuffix = ".corrupt"

// Persister writes whole-store images to a ByteStore under a fixed key.
type Persister struct {
	bytes    ByteStore
	key      string
	maxBytes int
	log      *logrus.Logger
}

// NewPersister creates a Persister. maxBytes <= 0 disables the size limit.
func NewPersister(bytes ByteStore, key string, maxBytes int, log *logrus.Logger) *Persister {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Persister{
		bytes:    bytes,
		key:      key,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Key returns the storage key of the live snapshot.
func (p *Persister) Key() string { return p.key }

// Load reads the current snapshot image.
func (p *Persister) Load(ctx context.Context) ([]byte, error) {
	return p.bytes.Load(ctx, p.key)
}

// Save overwrites the snapshot with image.
func (p *Persister) Save(ctx context.Context, image []byte) error {
	if p.maxBytes > 0 && len(image) > p.maxBytes {
		return fmt.Errorf("%w: image is %d bytes, limit %d", ErrStorageQuotaExceeded, len(image), p.maxBytes)
	}
	if err := p.bytes.Save(ctx, p.key, image); err != nil {
		return err
	}
	p.log.Debugf("Persisted store snapshot: key=%s, size=%d", p.key, len(image))
	return nil
}

// Quarantine keeps an unreadable image next to the live key so that it can
// be inspected after the store has been re-seeded.
func (p *Persister) Quarantine(ctx context.Context, image []byte) error {
	key := p.key + corruptSuffix
	if err := p.bytes.Save(ctx, key, image); err != nil {
		return fmt.Errorf("quarantine snapshot to %s: %w", key, err)
	}
	p.log.Warnf("Unreadable store snapshot kept at %s (%d bytes)", key, len(image))
	return nil
}
