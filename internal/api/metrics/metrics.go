// Package metrics defines and registers the custom Prometheus metrics of the
// portfolio API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds the domain counters.
//
// Metrics are registered with the default Prometheus registry at init.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

const namespace = "portfolio"

// Result labels shared by the counters below.
const (
	ResultSuccess      = "success"
	ResultInvalid      = "invalid"
	ResultUnauthorized = "unauthorized"
	ResultNotFound     = "not_found"
	ResultError        = "error"
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectOperationsTotal counts project API calls by outcome.
// Labels:
//   - operation: "list", "get", "create", "update", "delete" or "stats"
//   - result: one of the Result* constants
var ProjectOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_operations_total",
		Help:      "Total number of project operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionResolutionsTotal counts credential resolutions performed by the
// session middleware.
// Labels:
//   - source: "cookie" or "bearer"
//   - result: "success" (identity found), "unauthorized" (credential rejected)
//     or "error" (resolver failed)
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session credential resolutions, by source and result.",
	},
	[]string{"source", "result"},
)

// ObserveProjectOperation records the outcome of a project operation.
func ObserveProjectOperation(operation string, err error) {
	ProjectOperationsTotal.WithLabelValues(operation, Result(err)).Inc()
}

// Result classifies err into a result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, domain.ErrValidation):
		return ResultInvalid
	case errors.Is(err, domain.ErrUnauthorized):
		return ResultUnauthorized
	case errors.Is(err, domain.ErrProjectNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
