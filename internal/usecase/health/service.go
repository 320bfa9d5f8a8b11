package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the service cannot answer queries.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	dataset DatasetChecker
}

// New creates a Service.
func New(dataset DatasetChecker) *Service {
	return &Service{dataset: dataset}
}

// Check runs the health checks.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	status := Healthy
	if err := s.dataset.Ready(ctx); err != nil {
		checks["dataset"] = CheckError
		status = Unhealthy
	} else {
		checks["dataset"] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
