package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-schemaform/internal/metrics"
)

func TestObserveRequest(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.ObserveRequest("/", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest("/", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/submit", http.StatusBadRequest, time.Millisecond)

	expected := `
# HELP schemaform_requests_total HTTP requests by route and status code.
# TYPE schemaform_requests_total counter
schemaform_requests_total{route="/",status="200"} 2
schemaform_requests_total{route="/submit",status="400"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "schemaform_requests_total"))
}

func TestObserveSubmission(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.ObserveSubmission(nil)
	m.ObserveSubmission([]string{"count", "ratio"})
	m.ObserveSubmission([]string{"count"})

	expected := `
# HELP schemaform_coercion_fallbacks_total Numeric properties kept as raw strings because parsing failed.
# TYPE schemaform_coercion_fallbacks_total counter
schemaform_coercion_fallbacks_total{property="count"} 2
schemaform_coercion_fallbacks_total{property="ratio"} 1
# HELP schemaform_submissions_total Form submissions coerced successfully.
# TYPE schemaform_submissions_total counter
schemaform_submissions_total 3
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"schemaform_coercion_fallbacks_total", "schemaform_submissions_total"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/", http.StatusOK, time.Second)
		m.ObserveSubmission([]string{"x"})
	})
}

func TestHandler_ServesRegistry(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.ObserveSubmission(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "schemaform_submissions_total 1")
}
