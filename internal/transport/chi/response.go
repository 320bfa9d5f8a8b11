package chi

import (
	"encoding/json"
	"net/http"

	"github.com/kailas-cloud/recordq/internal/domain/filter"
	"github.com/kailas-cloud/recordq/internal/domain/page"
	queryuc "github.com/kailas-cloud/recordq/internal/usecase/query"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope is the JSON body of every API response.
type envelope struct {
	Status     string              `json:"status"`
	Data       any                 `json:"data"`
	Message    string              `json:"message,omitempty"`
	Pagination *page.Result        `json:"pagination,omitempty"`
	Sort       *queryuc.SortInfo   `json:"sort,omitempty"`
	Filters    *[]filter.Condition `json:"filters,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: statusError, Message: message})
}
