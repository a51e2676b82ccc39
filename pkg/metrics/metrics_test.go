package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.NewLogger(logger.Config{Level: logger.ErrorLevel, Format: "text"})
}

func TestNewMetricsHTTPOnly(t *testing.T) {
	m := NewMetrics(true, false, testLogger())

	require.NotNil(t, m.TotalHTTPRequestsCounter)
	require.NotNil(t, m.HTTPDurationHistogram)
	assert.Nil(t, m.DispatchCounters)
}

func TestDispatchCounters(t *testing.T) {
	m := NewMetrics(false, true, testLogger())

	m.IncrementDispatchCounter(DispatchMetricTotal)
	m.IncrementDispatchCounter(DispatchMetricTotal)
	m.IncrementDispatchCounter(DispatchMetricTotalFailed)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DispatchCounters[DispatchMetricTotal]))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DispatchCounters[DispatchMetricTotalFailed]))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.DispatchCounters[DispatchMetricTotalSuccess]))
}

func TestIncrementDispatchCounterDisabled(t *testing.T) {
	m := NewMetrics(true, false, testLogger())
	// Must not panic when dispatch counters are disabled
	m.IncrementDispatchCounter(DispatchMetricTotal)
}

func TestHTTPMiddleware(t *testing.T) {
	m := NewMetrics(true, false, testLogger())

	handler := m.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.TotalHTTPRequestsCounter))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.HTTPRequestsCounters[http.StatusBadRequest]))
}
