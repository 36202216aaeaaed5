package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	engine := gin.New()
	engine.Use(m.Middleware())
	engine.GET("/zones/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/zones/a", "/zones/b", "/missing"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/zones/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("unmatched", "404")))
}

func TestEvaluationCounters(t *testing.T) {
	m := NewMetrics()
	m.Evaluation("severe", 56.7, true, false)
	m.Evaluation("critical", 86.4, false, true)
	m.Evaluation("severe", 60, true, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluations.WithLabelValues("severe", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("critical", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stageFallbacks))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Evaluation("mild", 20, false, false) })
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.Evaluation("optimal", 3, false, false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stress_evaluations_total{persisted="false",severity="optimal"} 1`)
	assert.Contains(t, rec.Body.String(), "stress_overall_index_bucket")
}
