package query

import (
	"github.com/kailas-cloud/recordq/internal/domain"
	"github.com/kailas-cloud/recordq/internal/domain/ordering"
)

// Policy holds the per-collection query defaults.
// A sort key outside ValidSortKeys falls back to DefaultSortKey.
type Policy struct {
	Name            string
	ValidSortKeys   []string
	DefaultSortKey  string
	DefaultOrder    ordering.Direction
	DefaultPerPage  int
	NotFoundMessage string
}

// UsersPolicy returns the users collection policy.
func UsersPolicy() Policy {
	return Policy{
		Name:            domain.Users,
		ValidSortKeys:   []string{"id", "name", "position", "status", "department", "hire_date", "employee_id"},
		DefaultSortKey:  "id",
		DefaultOrder:    ordering.Asc,
		DefaultPerPage:  10,
		NotFoundMessage: "User not found",
	}
}

// DocumentsPolicy returns the documents collection policy.
func DocumentsPolicy() Policy {
	return Policy{
		Name:            domain.Documents,
		ValidSortKeys:   []string{"id", "name", "description", "category", "status", "createdAt", "updatedAt"},
		DefaultSortKey:  "name",
		DefaultOrder:    ordering.Asc,
		DefaultPerPage:  10,
		NotFoundMessage: "Document not found",
	}
}

// DefaultPolicies returns the policies of both collections.
func DefaultPolicies() []Policy {
	return []Policy{UsersPolicy(), DocumentsPolicy()}
}
