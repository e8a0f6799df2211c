package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"video-backend/internal/metrics"
)

func TestRoutePatternUsesTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	var got string
	r.HandleFunc("/api/films/{id}", func(w http.ResponseWriter, req *http.Request) {
		got = routePattern(req)
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/films/{id}", "200"))

	for _, id := range []string{"1", "42", "9000"} {
		req := httptest.NewRequest(http.MethodGet, "/api/films/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "/api/films/{id}", got)
	}

	// All three requests land on one series, not one per film ID.
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/films/{id}", "200"))
	assert.Equal(t, float64(3), after-before)
}

func TestRoutePatternFallsBackToPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/not/routed", nil)
	assert.Equal(t, "/not/routed", routePattern(req))
}
