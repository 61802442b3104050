package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreCorrupt means a snapshot image could not be opened as a store.
	ErrStoreCorrupt = errors.New("store snapshot is corrupt")
	// ErrSchemaTooNew means the image was written by a newer schema version.
	ErrSchemaTooNew = errors.New("store snapshot schema is newer than supported")
	// ErrStorageQuotaExceeded means the durable backend refused the image for its size.
	ErrStorageQuotaExceeded = errors.New("storage quota exceeded")
	// ErrPersistFailed matches every *PersistError.
	ErrPersistFailed = errors.New("failed to persist store snapshot")
	// ErrSnapshotNotFound is returned by a ByteStore that holds nothing under the key.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	ErrUnknownTable = errors.New("unknown table")
	ErrEmptyID      = errors.New("record id is required")
	ErrClosed       = errors.New("store is closed")
)

// PersistError reports a mutation that was applied in memory but whose
// snapshot did not reach the durable backend. Reads keep seeing the new
// state; the next successful flush writes it out.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s committed in memory but not persisted: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool { return target == ErrPersistFailed }
