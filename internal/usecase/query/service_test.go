package query

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/kailas-cloud/recordq/internal/domain"
	"github.com/kailas-cloud/recordq/internal/domain/filter"
	"github.com/kailas-cloud/recordq/internal/domain/ordering"
	"github.com/kailas-cloud/recordq/internal/domain/record"
)

// --- Mocks ---

type mockSource struct {
	data map[string][]record.Record
	err  error
}

func (m *mockSource) Records(_ context.Context, collection string) ([]record.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	rs, ok := m.data[collection]
	if !ok {
		return nil, domain.ErrUnknownCollection
	}
	return rs, nil
}

type observed struct {
	collection        string
	matched, returned int
}

type mockRecorder struct {
	calls []observed
}

func (m *mockRecorder) ObserveQuery(collection string, matched, returned int) {
	m.calls = append(m.calls, observed{collection, matched, returned})
}

// --- Fixtures ---

func makeUsers(n int) []record.Record {
	statuses := []string{"Active", "Inactive", "Remote"}
	rs := make([]record.Record, n)
	for i := range rs {
		rs[i] = record.New(
			record.F("id", record.Int(int64(i+1))),
			record.F("name", record.Str(fmt.Sprintf("user-%02d", n-i))),
			record.F("status", record.Str(statuses[i%len(statuses)])),
		)
	}
	return rs
}

func makeDocs() []record.Record {
	return []record.Record{
		record.New(record.F("id", record.Str("c")), record.F("name", record.Str("beta.txt")),
			record.F("tags", record.Strings("Xylophone", "music"))),
		record.New(record.F("id", record.Str("a")), record.F("name", record.Str("alpha.pdf")),
			record.F("tags", record.Strings("report"))),
		record.New(record.F("id", record.Str("b")), record.F("name", record.Str("gamma.png")),
			record.F("tags", record.Strings("box", "image"))),
	}
}

func newService(t *testing.T) (*Service, *mockRecorder) {
	t.Helper()
	rec := &mockRecorder{}
	src := &mockSource{data: map[string][]record.Record{
		domain.Users:     makeUsers(12),
		domain.Documents: makeDocs(),
	}}
	return New(src, DefaultPolicies()...).WithRecorder(rec), rec
}

func idsOf(rs []record.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		v, _ := r.Get("id")
		out[i] = v.String()
	}
	return out
}

// --- Tests ---

func TestList_Defaults(t *testing.T) {
	svc, rec := newService(t)

	res, err := svc.List(context.Background(), domain.Users, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Sort.SortBy != "id" || res.Sort.Order != ordering.Asc {
		t.Errorf("sort = %+v", res.Sort)
	}
	if res.Pagination.PerPage != 10 || res.Pagination.CurrentPage != 1 || res.Pagination.TotalPages != 2 {
		t.Errorf("pagination = %+v", res.Pagination)
	}
	// lexicographic: 1, 10, 11, 12, 2, ...
	got := idsOf(res.Records)
	want := []string{"1", "10", "11", "12", "2", "3", "4", "5", "6", "7"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
	if res.Filters == nil {
		t.Error("Filters should be an empty slice, not nil")
	}
	if len(rec.calls) != 1 || rec.calls[0] != (observed{domain.Users, 12, 10}) {
		t.Errorf("recorder calls = %+v", rec.calls)
	}
}

func TestList_ClampedLastPage(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.List(context.Background(), domain.Users, Params{SortBy: "id", Page: 10, PerPage: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pagination.CurrentPage != 3 || len(res.Records) != 2 {
		t.Fatalf("page = %d len = %d", res.Pagination.CurrentPage, len(res.Records))
	}
	if res.Pagination.HasNext || !res.Pagination.HasPrev {
		t.Errorf("pagination = %+v", res.Pagination)
	}
}

func TestList_FilterSortPaginate(t *testing.T) {
	svc, rec := newService(t)

	res, err := svc.List(context.Background(), domain.Users, Params{
		Filters: []filter.Condition{filter.New("status", filter.OpEq, record.Str("Active"))},
		SortBy:  "name",
		Order:   "DESC",
		PerPage: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Active users are ids 1,4,7,10 with names user-12, user-09, user-06, user-03.
	got := idsOf(res.Records)
	want := []string{"1", "4", "7"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
	if res.Pagination.TotalRecords != 4 || !res.Pagination.HasNext {
		t.Errorf("pagination = %+v", res.Pagination)
	}
	if res.Sort.Order != ordering.Desc || res.Sort.SortBy != "name" {
		t.Errorf("sort = %+v", res.Sort)
	}
	if len(res.Filters) != 1 {
		t.Errorf("filters echoed = %d", len(res.Filters))
	}
	if rec.calls[0].matched != 4 || rec.calls[0].returned != 3 {
		t.Errorf("recorder = %+v", rec.calls[0])
	}
}

func TestList_InvalidSortKeyFallsBackToDefault(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.List(context.Background(), domain.Documents, Params{SortBy: "file_path", Order: "sideways"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sort.SortBy != "name" || res.Sort.Order != ordering.Asc {
		t.Errorf("sort = %+v", res.Sort)
	}
	got := idsOf(res.Records)
	if got[0] != "a" || got[1] != "c" || got[2] != "b" {
		t.Errorf("ids = %v", got)
	}
}

func TestList_ListContains(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.List(context.Background(), domain.Documents, Params{
		Filters: []filter.Condition{filter.New("tags", filter.OpContains, record.Str("X"))},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := idsOf(res.Records)
	if len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Errorf("ids = %v, want [c b]", got)
	}
}

func TestList_Idempotent(t *testing.T) {
	svc, _ := newService(t)
	params := Params{
		Filters: []filter.Condition{filter.New("status", filter.OpNe, record.Str("Remote"))},
		SortBy:  "status",
		Page:    2,
		PerPage: 4,
	}

	a, err := svc.List(context.Background(), domain.Users, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.List(context.Background(), domain.Users, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ga, gb := idsOf(a.Records), idsOf(b.Records)
	if len(ga) != len(gb) {
		t.Fatalf("lengths differ: %v vs %v", ga, gb)
	}
	for i := range ga {
		if ga[i] != gb[i] {
			t.Fatalf("runs differ: %v vs %v", ga, gb)
		}
	}
	if a.Pagination != b.Pagination {
		t.Errorf("pagination differs: %+v vs %+v", a.Pagination, b.Pagination)
	}
}

func TestList_UnknownCollection(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.List(context.Background(), "orders", Params{})
	if !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestList_SourceError(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&mockSource{err: boom}, UsersPolicy())
	_, err := svc.List(context.Background(), domain.Users, Params{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestWithDefaultPerPage(t *testing.T) {
	svc, _ := newService(t)
	svc.WithDefaultPerPage(4).WithDefaultPerPage(0)

	res, err := svc.List(context.Background(), domain.Users, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pagination.PerPage != 4 || len(res.Records) != 4 {
		t.Errorf("pagination = %+v", res.Pagination)
	}
}

func TestGet(t *testing.T) {
	svc, _ := newService(t)

	r, err := svc.Get(context.Background(), domain.Users, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := r.Get("id"); v.String() != "7" {
		t.Errorf("id = %s", v)
	}

	d, err := svc.Get(context.Background(), domain.Documents, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := d.Get("name"); v.String() != "gamma.png" {
		t.Errorf("name = %s", v)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), domain.Users, "999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPolicies(t *testing.T) {
	for _, p := range DefaultPolicies() {
		if p.ValidSortKeys[0] != "id" {
			t.Errorf("%s: first sort key = %q, want id", p.Name, p.ValidSortKeys[0])
		}
		if !slices.Contains(p.ValidSortKeys, p.DefaultSortKey) {
			t.Errorf("%s: default sort key %q not whitelisted", p.Name, p.DefaultSortKey)
		}
		if p.DefaultPerPage != 10 || p.DefaultOrder != ordering.Asc {
			t.Errorf("%s: defaults = %d/%s", p.Name, p.DefaultPerPage, p.DefaultOrder)
		}
	}
}
