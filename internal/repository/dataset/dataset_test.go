package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/kailas-cloud/recordq/internal/domain"
	"github.com/kailas-cloud/recordq/internal/domain/record"
)

var refTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func mustGet(t *testing.T, r record.Record, key string) record.Value {
	t.Helper()
	v, ok := r.Get(key)
	if !ok {
		t.Fatalf("record missing %q: %v", key, r.Keys())
	}
	return v
}

func TestGenerator_Users(t *testing.T) {
	users := NewGenerator(42, refTime).Users(50)
	if len(users) != 50 {
		t.Fatalf("len = %d", len(users))
	}

	wantKeys := []string{"id", "name", "position", "address", "status", "email", "phone",
		"department", "hire_date", "employee_id"}
	employeeIDs := make(map[string]bool)

	for i, u := range users {
		keys := u.Keys()
		if len(keys) != len(wantKeys) {
			t.Fatalf("user %d keys = %v", i, keys)
		}
		for j := range wantKeys {
			if keys[j] != wantKeys[j] {
				t.Fatalf("user %d keys = %v", i, keys)
			}
		}

		if id := mustGet(t, u, "id"); id.Kind() != record.KindInt || id.String() != itoa(i+1) {
			t.Errorf("user %d id = %s", i, id)
		}
		hire := mustGet(t, u, "hire_date").String()
		if !dateRegex.MatchString(hire) {
			t.Errorf("hire_date = %q", hire)
		}
		if d, _ := time.Parse(time.DateOnly, hire); d.After(refTime) {
			t.Errorf("hire_date %s is in the future", hire)
		}
		emp := mustGet(t, u, "employee_id").String()
		if len(emp) != 6 {
			t.Errorf("employee_id = %q", emp)
		}
		if employeeIDs[emp] {
			t.Errorf("duplicate employee_id %s", emp)
		}
		employeeIDs[emp] = true
	}
}

func TestGenerator_Documents(t *testing.T) {
	docs := NewGenerator(7, refTime).Documents(30)
	if len(docs) != 30 {
		t.Fatalf("len = %d", len(docs))
	}

	for i, d := range docs {
		id := mustGet(t, d, "id").String()
		if !uuidRegex.MatchString(id) {
			t.Errorf("doc %d id = %q", i, id)
		}
		tags := mustGet(t, d, "tags")
		if !tags.IsList() || len(tags.Items()) < 1 || len(tags.Items()) > 5 {
			t.Errorf("doc %d tags = %s", i, tags)
		}
		switch c := mustGet(t, d, "category").String(); c {
		case "Document", "Image", "Video":
		default:
			t.Errorf("doc %d category = %q", i, c)
		}
		for _, k := range []string{"createdAt", "updatedAt"} {
			if _, err := time.Parse(isoSeconds, mustGet(t, d, k).String()); err != nil {
				t.Errorf("doc %d %s: %v", i, k, err)
			}
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a, err := json.Marshal(NewGenerator(99, refTime).Documents(5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(NewGenerator(99, refTime).Documents(5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Error("same seed produced different documents")
	}
}

func TestStore(t *testing.T) {
	users := NewGenerator(1, refTime).Users(3)
	s := NewStore(map[string][]record.Record{domain.Users: users})

	got, err := s.Records(context.Background(), domain.Users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || s.Count(domain.Users) != 3 {
		t.Errorf("len = %d count = %d", len(got), s.Count(domain.Users))
	}

	_, err = s.Records(context.Background(), "orders")
	if !errors.Is(err, domain.ErrUnknownCollection) {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
	if s.Count("orders") != 0 {
		t.Error("unknown collection count should be 0")
	}
	if err := s.Ready(context.Background()); err != nil {
		t.Errorf("Ready: %v", err)
	}
}

func TestStore_EmptyNotReady(t *testing.T) {
	s := NewStore(nil)
	if err := s.Ready(context.Background()); !errors.Is(err, domain.ErrDatasetNotReady) {
		t.Fatalf("expected ErrDatasetNotReady, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	data := `[{"id": 1, "name": "Ada", "tags": ["x"]}, {"id": 2, "name": "Linus"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	rs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("len = %d", len(rs))
	}
	if v := mustGet(t, rs[1], "name"); v.String() != "Linus" {
		t.Errorf("name = %s", v)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for non-array dataset")
	}
}

func TestBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")
	if err := os.WriteFile(path, []byte(`[{"id": "d1", "name": "a.txt"}]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Build(Options{Seed: 3, Users: 4, DocumentsFile: path, Now: refTime})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Count(domain.Users) != 4 {
		t.Errorf("users = %d", s.Count(domain.Users))
	}
	if s.Count(domain.Documents) != 1 {
		t.Errorf("documents = %d", s.Count(domain.Documents))
	}
}

func TestBuild_BadFile(t *testing.T) {
	_, err := Build(Options{UsersFile: filepath.Join(t.TempDir(), "nope.json")})
	if err == nil {
		t.Fatal("expected error")
	}
}

func itoa(n int) string {
	return record.Int(int64(n)).String()
}
