package chi

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recordq/internal/domain"
	"github.com/kailas-cloud/recordq/internal/domain/filter"
	logpkg "github.com/kailas-cloud/recordq/internal/logger"
	healthuc "github.com/kailas-cloud/recordq/internal/usecase/health"
	queryuc "github.com/kailas-cloud/recordq/internal/usecase/query"
)

const defaultMaxBodyBytes = 1 << 20

// Server serves the record query API.
type Server struct {
	queries      *queryuc.Service
	health       *healthuc.Service
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewServer creates an HTTP API server.
func NewServer(queries *queryuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		queries:      queries,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// WithMaxBodyBytes caps the size of filter bodies read from POST requests.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// ListUsers handles GET|POST /api/users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, domain.Users)
}

// GetUser handles GET /api/users/get/{id}. User ids are integers.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeNotFound(w, domain.Users)
		return
	}
	s.get(w, r, domain.Users, strconv.Itoa(id))
}

// ListDocuments handles GET|POST /api/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, domain.Documents)
}

// GetDocument handles GET /api/documents/get/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	s.get(w, r, domain.Documents, chi.URLParam(r, "id"))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, collection string) {
	query := r.URL.Query()
	params := queryuc.Params{
		Page:    bindInt(r, query, "page", 1),
		PerPage: bindInt(r, query, "per_page", 0),
		SortBy:  bindString(r, query, "sort_by"),
		Order:   bindString(r, query, "order"),
	}
	if r.Method == http.MethodPost {
		params.Filters = s.readFilters(w, r)
	}

	res, err := s.queries.List(r.Context(), collection, params)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status:     statusSuccess,
		Data:       res.Records,
		Pagination: &res.Pagination,
		Sort:       &res.Sort,
		Filters:    &res.Filters,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request, collection, id string) {
	rec, err := s.queries.Get(r.Context(), collection, id)
	if errors.Is(err, domain.ErrNotFound) {
		s.writeNotFound(w, collection)
		return
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: statusSuccess, Data: rec})
}

// readFilters decodes the POST body. A missing, oversized or malformed body means no filters.
func (s *Server) readFilters(w http.ResponseWriter, r *http.Request) []filter.Condition {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		logpkg.FromContext(r.Context()).Debug("filter body ignored", zap.Error(err))
		return nil
	}
	return filter.Parse(body)
}

// writeNotFound answers a get-by-id miss with HTTP 200 and an error envelope.
func (s *Server) writeNotFound(w http.ResponseWriter, collection string) {
	msg := "not found"
	if pol, err := s.queries.Policy(collection); err == nil {
		msg = pol.NotFoundMessage
	}
	writeJSON(w, http.StatusOK, envelope{Status: statusError, Message: msg})
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnknownCollection) {
		logpkg.FromContext(r.Context()).Warn("unknown collection", zap.Error(err))
		writeJSON(w, http.StatusNotFound, envelope{Status: statusError, Message: "collection not found"})
		return
	}
	s.logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
	writeJSON(w, http.StatusInternalServerError, envelope{Status: statusError, Message: "internal error"})
}

// bindInt reads an optional integer query parameter; unparsable input yields def.
func bindInt(r *http.Request, query url.Values, name string, def int) int {
	v := def
	if err := runtime.BindQueryParameter("form", true, false, name, query, &v); err != nil {
		logpkg.FromContext(r.Context()).Debug("query parameter ignored",
			zap.String("param", name), zap.Error(err))
		return def
	}
	return v
}

func bindString(r *http.Request, query url.Values, name string) string {
	var v string
	if err := runtime.BindQueryParameter("form", true, false, name, query, &v); err != nil {
		logpkg.FromContext(r.Context()).Debug("query parameter ignored",
			zap.String("param", name), zap.Error(err))
		return ""
	}
	return v
}
