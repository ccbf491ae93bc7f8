package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body := scrape(t); !bytes.Contains(body, []byte("animegen_http_requests_total")) {
		t.Fatalf("expected animegen_http_requests_total in metrics")
	}
}

// TestMetricsMiddleware_UsesRoutePattern ensures requests are labelled by the
// chi route pattern instead of the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/items/42", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := scrape(t)
	if !bytes.Contains(body, []byte(`path="/api/items/{id}"`)) {
		t.Fatalf("expected route pattern label in metrics")
	}
	if bytes.Contains(body, []byte(`path="/api/items/42"`)) {
		t.Fatalf("raw path leaked into labels")
	}
}

func TestIncrementRejected(t *testing.T) {
	before := testutil.ToFloat64(rejectedTotal.WithLabelValues("content_type"))
	postJSON(NewMux(&mockService{}), "/api/generate", `{}`) // valid, not rejected
	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	NewMux(&mockService{}).ServeHTTP(httptest.NewRecorder(), req)
	if got := testutil.ToFloat64(rejectedTotal.WithLabelValues("content_type")); got != before+1 {
		t.Fatalf("expected rejected counter %v, got %v", before+1, got)
	}

	prev := testutil.ToFloat64(rejectedTotal.WithLabelValues("unspecified"))
	IncrementRejected("")
	if got := testutil.ToFloat64(rejectedTotal.WithLabelValues("unspecified")); got != prev+1 {
		t.Fatalf("empty reason should count as unspecified: %v", got)
	}
}
