// Package dataset provides the read-only in-memory record collections.
package dataset

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/recordq/internal/domain"
	"github.com/kailas-cloud/recordq/internal/domain/record"
)

// Store holds named collections. It is built once and never mutated,
// so concurrent readers need no locking.
type Store struct {
	collections map[string][]record.Record
}

// NewStore creates a Store over copies of the given collections.
func NewStore(collections map[string][]record.Record) *Store {
	m := make(map[string][]record.Record, len(collections))
	for name, rs := range collections {
		cp := make([]record.Record, len(rs))
		copy(cp, rs)
		m[name] = cp
	}
	return &Store{collections: m}
}

// Records returns the collection in its stored order. Callers must not modify the slice.
func (s *Store) Records(_ context.Context, collection string) ([]record.Record, error) {
	rs, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrUnknownCollection)
	}
	return rs, nil
}

// Count returns the size of a collection, or 0 when it is unknown.
func (s *Store) Count(collection string) int {
	return len(s.collections[collection])
}

// Ready reports whether at least one collection is loaded.
func (s *Store) Ready(_ context.Context) error {
	if len(s.collections) == 0 {
		return domain.ErrDatasetNotReady
	}
	return nil
}
