// Package domain holds collection names and sentinel errors shared across layers.
package domain

// Collection names.
const (
	Users     = "users"
	Documents = "documents"
)
