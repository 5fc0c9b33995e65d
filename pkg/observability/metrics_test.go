package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_RecordFetchOutcomes(t *testing.T) {
	m := observability.NewMetrics()
	hooks := observability.Hooks(nil, m)
	ctx := context.Background()

	hooks.OnFetchFinish(ctx, &domain.FetchEvent{Attempt: 1, Count: 4, Duration: 20 * time.Millisecond})
	hooks.OnFetchFinish(ctx, &domain.FetchEvent{Attempt: 2, Failure: domain.FailureNoConnectivity, Duration: time.Millisecond})
	hooks.OnFetchFinish(ctx, &domain.FetchEvent{Attempt: 3, Failure: domain.FailureNoConnectivity})

	series, err := testutil.GatherAndCount(m.Registry(), "bakingapp_recipe_fetches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)

	const want = `
# HELP bakingapp_recipe_fetches_total Total number of recipe list requests by outcome and failure kind
# TYPE bakingapp_recipe_fetches_total counter
bakingapp_recipe_fetches_total{failure="",outcome="success"} 1
bakingapp_recipe_fetches_total{failure="no_connectivity",outcome="failure"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), bytes.NewBufferString(want), "bakingapp_recipe_fetches_total"))
}

func TestHooks_RecordStepMoves(t *testing.T) {
	m := observability.NewMetrics()
	hooks := observability.Hooks(nil, m)
	ctx := context.Background()

	hooks.OnStepChange(ctx, &domain.StepEvent{From: 0, To: 1, Total: 3, Direction: "next"})
	hooks.OnStepChange(ctx, &domain.StepEvent{From: 1, To: 2, Total: 3, Direction: "next"})
	hooks.OnStepChange(ctx, &domain.StepEvent{From: 2, To: 1, Total: 3, Direction: "previous"})

	const want = `
# HELP bakingapp_step_moves_total Total number of step navigator moves
# TYPE bakingapp_step_moves_total counter
bakingapp_step_moves_total{direction="next"} 2
bakingapp_step_moves_total{direction="previous"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), bytes.NewBufferString(want), "bakingapp_step_moves_total"))
}

func TestHooks_LogWithoutMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.Hooks(logger, nil)
	ctx := context.Background()

	hooks.OnFetchStart(ctx, &domain.FetchEvent{Attempt: 1})
	hooks.OnFetchFinish(ctx, &domain.FetchEvent{Attempt: 1, Failure: domain.FailureGeneral, Err: assert.AnError})

	out := buf.String()
	assert.Contains(t, out, "msg=fetch_start")
	assert.Contains(t, out, "failure=general")
	assert.Contains(t, out, "level=WARN")
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveStep(&domain.StepEvent{Direction: "next"})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bakingapp_step_moves_total{direction="next"} 1`)
}
