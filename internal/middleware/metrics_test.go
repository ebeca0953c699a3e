package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/quick"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/metrics"
)

// Fresh registry per instance so tests don't collide on duplicate registration
func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
}

func setupTestRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(m))
	return router
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	return metric.Counter.GetValue()
}

func histogramSampleCount(t *testing.T, observer prometheus.Observer) uint64 {
	t.Helper()
	m, ok := observer.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not expose its metric", observer)
	}
	metric := &dto.Metric{}
	if err := m.Write(metric); err != nil {
		t.Fatalf("Failed to read histogram: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

func statusCategory(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// For any HTTP status a handler returns, one request increments the request
// counter by exactly one under the matching status category
func TestProperty_HTTPRequestMetricsIncrement(t *testing.T) {
	property := func(statusCode uint16) bool {
		if statusCode < 200 || statusCode >= 600 {
			return true // Skip invalid status codes
		}

		m := newTestMetrics()
		router := setupTestRouter(m)
		router.GET("/api/v1/boards", func(c *gin.Context) {
			c.Status(int(statusCode))
		})

		req := httptest.NewRequest("GET", "/api/v1/boards", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != int(statusCode) {
			t.Logf("request returned %d, want %d", w.Code, statusCode)
			return false
		}

		counter, err := m.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/api/v1/boards", statusCategory(int(statusCode)))
		if err != nil {
			t.Logf("counter lookup failed: %v", err)
			return false
		}
		if got := counterValue(t, counter); got != 1 {
			t.Logf("counter = %v after one request, want 1", got)
			return false
		}
		return true
	}

	config := &quick.Config{MaxCount: 100}
	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// Every measured request lands one sample in the duration histogram
func TestMetricsMiddleware_DurationRecorded(t *testing.T) {
	m := newTestMetrics()
	router := setupTestRouter(m)
	router.GET("/api/v1/boards/:boardId", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/boards/123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}

	// The route pattern, not the raw path, is the endpoint label
	observer, err := m.HTTPRequestDuration.GetMetricWithLabelValues("GET", "/api/v1/boards/:boardId")
	if err != nil {
		t.Fatalf("histogram lookup failed: %v", err)
	}
	if got := histogramSampleCount(t, observer); got != 3 {
		t.Errorf("histogram samples = %d after 3 requests, want 3", got)
	}
}

func TestMetricsMiddleware_MethodsAndStatuses(t *testing.T) {
	m := newTestMetrics()
	router := setupTestRouter(m)

	router.GET("/api/v1/boards", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/v1/boards", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.DELETE("/api/v1/boards/:boardId", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	testCases := []struct {
		name     string
		method   string
		path     string
		pattern  string
		category string
	}{
		{"GET boards", "GET", "/api/v1/boards", "/api/v1/boards", "2xx"},
		{"POST board", "POST", "/api/v1/boards", "/api/v1/boards", "2xx"},
		{"DELETE forbidden", "DELETE", "/api/v1/boards/b1", "/api/v1/boards/:boardId", "4xx"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			counter, err := m.HTTPRequestsTotal.GetMetricWithLabelValues(tc.method, tc.pattern, tc.category)
			if err != nil {
				t.Fatalf("counter lookup failed: %v", err)
			}
			if got := counterValue(t, counter); got != 1 {
				t.Errorf("counter = %v, want 1", got)
			}
		})
	}
}

// Health and metrics endpoints stay out of the request metrics
func TestMetricsMiddleware_ExcludedEndpoints(t *testing.T) {
	m := newTestMetrics()
	router := setupTestRouter(m)

	excludedPaths := []string{
		"/metrics",
		"/health",
		"/api/v1/metrics",
		"/api/v1/health",
	}
	for _, path := range excludedPaths {
		router.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	for _, path := range excludedPaths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			counter, err := m.HTTPRequestsTotal.GetMetricWithLabelValues("GET", path, "2xx")
			if err != nil {
				t.Fatalf("counter lookup failed: %v", err)
			}
			if got := counterValue(t, counter); got != 0 {
				t.Errorf("excluded endpoint recorded %v requests, want 0", got)
			}
		})
	}
}
