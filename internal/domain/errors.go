package domain

import "errors"

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrUnknownCollection signals a collection name with no registered policy or data.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrDatasetNotReady signals that no collections have been loaded.
	ErrDatasetNotReady = errors.New("dataset not ready")
)
