package store

import "context"

// StampSchemaVersion overwrites the schema version recorded in s.
func StampSchemaVersion(ctx context.Context, s *Store, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tableSet{db: s.db}.put(ctx, tableMeta, metaVersionKey, encodeMeta(version))
}
