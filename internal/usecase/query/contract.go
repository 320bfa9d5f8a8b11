package query

import (
	"context"

	"github.com/kailas-cloud/recordq/internal/domain/record"
)

// Source provides read-only record collections by name.
type Source interface {
	Records(ctx context.Context, collection string) ([]record.Record, error)
}

// Recorder observes executed queries.
type Recorder interface {
	ObserveQuery(collection string, matched, returned int)
}
