package health

import "context"

// DatasetChecker reports whether the record collections are loaded.
type DatasetChecker interface {
	Ready(ctx context.Context) error
}
