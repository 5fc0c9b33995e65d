// Package observability turns lifecycle hooks into structured logs and Prometheus metrics.
package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/bakingapp/internal/logging"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for fetch metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the collectors for recipe fetches and step navigation.
type Metrics struct {
	registry *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	stepMoves     *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bakingapp_recipe_fetches_total",
				Help: "Total number of recipe list requests by outcome and failure kind",
			},
			[]string{"outcome", "failure"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bakingapp_recipe_fetch_duration_seconds",
				Help:    "Duration of recipe list requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		stepMoves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bakingapp_step_moves_total",
				Help: "Total number of step navigator moves",
			},
			[]string{"direction"},
		),
	}
	m.registry.MustRegister(m.fetches, m.fetchDuration, m.stepMoves)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFetch records one finished recipe request.
func (m *Metrics) ObserveFetch(e *domain.FetchEvent) {
	outcome := OutcomeSuccess
	if e.Failure != domain.FailureNone {
		outcome = OutcomeFailure
	}
	m.fetches.WithLabelValues(outcome, string(e.Failure)).Inc()
	m.fetchDuration.WithLabelValues(outcome).Observe(e.Duration.Seconds())
}

// ObserveStep records one navigator move.
func (m *Metrics) ObserveStep(e *domain.StepEvent) {
	m.stepMoves.WithLabelValues(e.Direction).Inc()
}

// Hooks returns lifecycle hooks that log every event and, when m is not nil, record metrics.
func Hooks(logger *slog.Logger, m *Metrics) domain.LifecycleHooks {
	if logger == nil {
		logger = logging.NewNop()
	}
	return domain.LifecycleHooks{
		OnFetchStart: func(ctx context.Context, e *domain.FetchEvent) {
			logger.DebugContext(ctx, "fetch_start", "attempt", e.Attempt)
		},
		OnFetchFinish: func(ctx context.Context, e *domain.FetchEvent) {
			if e.Failure != domain.FailureNone {
				logger.WarnContext(ctx, "fetch_finish",
					"attempt", e.Attempt,
					"failure", e.Failure,
					"duration", e.Duration,
					"err", e.Err,
				)
			} else {
				logger.InfoContext(ctx, "fetch_finish",
					"attempt", e.Attempt,
					"count", e.Count,
					"duration", e.Duration,
				)
			}
			if m != nil {
				m.ObserveFetch(e)
			}
		},
		OnStepChange: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_change",
				"from", e.From,
				"to", e.To,
				"total", e.Total,
				"direction", e.Direction,
			)
			if m != nil {
				m.ObserveStep(e)
			}
		},
	}
}
