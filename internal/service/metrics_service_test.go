package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.Nil(t, m.Registry())
	m.ObserveHTTPRequest(http.MethodGet, "/health", 200, time.Millisecond)
	m.RecordCacheLookup(true)
	m.ObserveGeneration("FIRST_TERM", OutcomeSuccess, "", time.Second)
	m.SetScheduleGauges("FIRST_TERM", 10, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsServiceGenerationCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveGeneration("FIRST_TERM", OutcomeSuccess, "", 20*time.Millisecond)
	m.ObserveGeneration("FIRST_TERM", OutcomeFailure, "SCHEDULE_EXISTS", 5*time.Millisecond)
	m.SetScheduleGauges("FIRST_TERM", 42, 0.875)

	body := scrape(t, m)
	assert.Contains(t, body, `duty_schedule_generations_total{code="",outcome="success",term="FIRST_TERM"} 1`)
	assert.Contains(t, body, `duty_schedule_generations_total{code="SCHEDULE_EXISTS",outcome="failure",term="FIRST_TERM"} 1`)
	assert.Contains(t, body, `duty_schedule_generation_seconds_count{term="FIRST_TERM"} 2`)
	assert.Contains(t, body, `duty_schedule_assignments{term="FIRST_TERM"} 42`)
	assert.Contains(t, body, `duty_schedule_balance_score{term="FIRST_TERM"} 0.875`)
}

func scrape(t *testing.T, m *MetricsService) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
