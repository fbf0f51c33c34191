package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Analysis("water", 10*time.Millisecond, nil)
	m.Analysis("water", time.Millisecond, errors.New("boom"))
	m.Anomalies("water", "CRITICAL", 2)
	m.Anomalies("water", "WARNING", 0)
	m.Published("kafka", nil)

	if got := testutil.ToFloat64(m.analysesTotal.WithLabelValues("water", "ok")); got != 1 {
		t.Fatalf("ok analyses = %v", got)
	}
	if got := testutil.ToFloat64(m.analysesTotal.WithLabelValues("water", "error")); got != 1 {
		t.Fatalf("error analyses = %v", got)
	}
	if got := testutil.ToFloat64(m.anomaliesTotal.WithLabelValues("water", "CRITICAL")); got != 2 {
		t.Fatalf("anomalies = %v", got)
	}
	if got := testutil.ToFloat64(m.publishedTotal.WithLabelValues("kafka", "ok")); got != 1 {
		t.Fatalf("published = %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Analysis("space", time.Second, nil)
	m.HTTPRequest("GET", "/healthz", 200, time.Millisecond)
	m.ChatReply("help", "template")
}

func TestHandlerExposesPrivateRegistry(t *testing.T) {
	m := New()
	m.HTTPRequest(http.MethodGet, "/healthz", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/healthz",status="200"} 1`) {
		t.Fatalf("body missing counter:\n%s", rec.Body.String())
	}
}
