package query

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recordq/internal/domain"
	"github.com/kailas-cloud/recordq/internal/domain/filter"
	"github.com/kailas-cloud/recordq/internal/domain/ordering"
	"github.com/kailas-cloud/recordq/internal/domain/page"
	"github.com/kailas-cloud/recordq/internal/domain/record"
	logpkg "github.com/kailas-cloud/recordq/internal/logger"
)

// Params are the client-supplied query inputs. Zero values select policy defaults.
type Params struct {
	Filters []filter.Condition
	SortBy  string
	Order   string
	Page    int
	PerPage int
}

// SortInfo echoes the sort that was applied.
type SortInfo struct {
	SortBy string             `json:"sort_by"`
	Order  ordering.Direction `json:"order"`
}

// Result is one served page with its metadata.
type Result struct {
	Records    []record.Record
	Pagination page.Result
	Sort       SortInfo
	Filters    []filter.Condition
}

// Service runs the filter, sort and paginate pipeline over named collections.
type Service struct {
	source   Source
	policies map[string]Policy
	recorder Recorder
}

// New creates a query service for the given policies.
func New(source Source, policies ...Policy) *Service {
	m := make(map[string]Policy, len(policies))
	for _, p := range policies {
		m[p.Name] = p
	}
	return &Service{source: source, policies: m}
}

// WithRecorder attaches a query observer.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// WithDefaultPerPage overrides the default page size of every policy.
func (s *Service) WithDefaultPerPage(n int) *Service {
	if n <= 0 {
		return s
	}
	for name, p := range s.policies {
		p.DefaultPerPage = n
		s.policies[name] = p
	}
	return s
}

// Policy returns the policy registered for collection.
func (s *Service) Policy(collection string) (Policy, error) {
	p, ok := s.policies[collection]
	if !ok {
		return Policy{}, fmt.Errorf("collection %q: %w", collection, domain.ErrUnknownCollection)
	}
	return p, nil
}

// List filters, sorts and paginates a collection.
func (s *Service) List(ctx context.Context, collection string, params Params) (Result, error) {
	pol, err := s.Policy(collection)
	if err != nil {
		return Result{}, err
	}

	all, err := s.source.Records(ctx, collection)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", collection, err)
	}

	sortBy := params.SortBy
	if !slices.Contains(pol.ValidSortKeys, sortBy) {
		sortBy = pol.DefaultSortKey
	}
	dir := pol.DefaultOrder
	if params.Order != "" {
		dir = ordering.ParseDirection(params.Order)
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = pol.DefaultPerPage
	}

	matched := filter.Apply(all, params.Filters)
	sorted, usedKey := ordering.Sort(matched, sortBy, dir, pol.ValidSortKeys)
	items, pageInfo := page.Paginate(sorted, page.Request{Page: params.Page, PerPage: perPage})

	if s.recorder != nil {
		s.recorder.ObserveQuery(collection, len(matched), len(items))
	}
	logpkg.FromContext(ctx).Debug("query executed",
		zap.String("collection", collection),
		zap.Int("filters", len(params.Filters)),
		zap.String("sort_by", usedKey),
		zap.String("order", string(dir)),
		zap.Int("matched", len(matched)),
		zap.Int("page", pageInfo.CurrentPage),
	)

	filters := params.Filters
	if filters == nil {
		filters = []filter.Condition{}
	}

	// Sort echoes the key and direction actually applied, not the raw request.
	return Result{
		Records:    items,
		Pagination: pageInfo,
		Sort:       SortInfo{SortBy: usedKey, Order: dir},
		Filters:    filters,
	}, nil
}

// Get returns the record of collection whose id field renders as id.
func (s *Service) Get(ctx context.Context, collection, id string) (record.Record, error) {
	if _, err := s.Policy(collection); err != nil {
		return record.Record{}, err
	}

	all, err := s.source.Records(ctx, collection)
	if err != nil {
		return record.Record{}, fmt.Errorf("load %s: %w", collection, err)
	}

	for _, r := range all {
		if v, ok := r.Get("id"); ok && v.String() == id {
			return r, nil
		}
	}
	return record.Record{}, fmt.Errorf("%s %q: %w", collection, id, domain.ErrNotFound)
}
