// Package ordering sorts records by the rendered form of a whitelisted field.
package ordering

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/recordq/internal/domain/record"
)

// Direction is the sort direction.
type Direction string

const (
	// Asc sorts ascending.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// ParseDirection maps "desc" (any case) to Desc and everything else to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// ResolveKey returns sortBy when it is whitelisted, else the first whitelisted key.
// An empty whitelist accepts any key.
func ResolveKey(sortBy string, validKeys []string) string {
	if len(validKeys) == 0 || slices.Contains(validKeys, sortBy) {
		return sortBy
	}
	return validKeys[0]
}

type keyed struct {
	key string
	rec record.Record
}

// Sort returns a new, stably sorted slice and the key actually used.
// Records missing the key sort as the empty string.
func Sort(records []record.Record, sortBy string, dir Direction, validKeys []string) ([]record.Record, string) {
	key := ResolveKey(sortBy, validKeys)

	items := make([]keyed, len(records))
	for i, r := range records {
		k := ""
		if v, ok := r.Get(key); ok {
			k = v.String()
		}
		items[i] = keyed{key: k, rec: r}
	}

	cmp := func(a, b keyed) int { return strings.Compare(a.key, b.key) }
	if dir == Desc {
		cmp = func(a, b keyed) int { return strings.Compare(b.key, a.key) }
	}
	slices.SortStableFunc(items, cmp)

	out := make([]record.Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out, key
}
