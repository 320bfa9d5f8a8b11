package dataset

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/recordq/internal/domain"
	"github.com/kailas-cloud/recordq/internal/domain/record"
)

// Options selects where each collection comes from. A non-empty file path wins
// over generation.
type Options struct {
	Seed          uint64
	Users         int
	Documents     int
	UsersFile     string
	DocumentsFile string
	Now           time.Time
}

// Build assembles the users and documents collections into a Store.
func Build(opts Options) (*Store, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	gen := NewGenerator(opts.Seed, now)

	users, err := collection(opts.UsersFile, func() []record.Record { return gen.Users(opts.Users) })
	if err != nil {
		return nil, fmt.Errorf("build users: %w", err)
	}
	docs, err := collection(opts.DocumentsFile, func() []record.Record { return gen.Documents(opts.Documents) })
	if err != nil {
		return nil, fmt.Errorf("build documents: %w", err)
	}

	return NewStore(map[string][]record.Record{
		domain.Users:     users,
		domain.Documents: docs,
	}), nil
}

func collection(path string, generate func() []record.Record) ([]record.Record, error) {
	if path != "" {
		return LoadFile(path)
	}
	return generate(), nil
}
