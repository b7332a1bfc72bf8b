package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAnalysis(t *testing.T) {
	c := NewCollector("lexico")
	c.ObserveAnalysis("es", "document", 20*time.Millisecond, 7, map[string]int{"email": 2})
	c.ObserveAnalysis("es", "adhoc", time.Millisecond, 3, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Analyses.WithLabelValues("es", "document")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.TokensCounted))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.PatternsDetected.WithLabelValues("email")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	c := NewCollector("lexico")
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", c.Handler())

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/items/{id}", "418")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "lexico_http_requests_total"))
}
