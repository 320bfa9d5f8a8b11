package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/recordq/internal/domain/record"
)

// LoadFile reads a JSON array of flat objects.
func LoadFile(path string) ([]record.Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var rs []record.Record
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return rs, nil
}
