package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAPI(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/posts/:id", "200", 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/posts/:id", "200", 30*time.Millisecond)
	m.ObserveAPI("", "", "", time.Millisecond)

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/posts/:id", "200")); got != 2 {
		t.Fatalf("requests: want=2 got=%v", got)
	}
	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("UNKNOWN", "unknown", "0")); got != 1 {
		t.Fatalf("defaulted labels: want=1 got=%v", got)
	}
}

func TestAggregateCounters(t *testing.T) {
	m := NewMetrics()
	m.ObserveAggregateOperation("Publishing.Post.Update", "conflict", time.Millisecond)
	m.IncAggregateConflict("Publishing.Post.Update")
	m.IncAggregateConflict("Publishing.Post.Update")

	if got := testutil.ToFloat64(m.aggregateConflicts.WithLabelValues("Publishing.Post.Update")); got != 2 {
		t.Fatalf("conflicts: want=2 got=%v", got)
	}
	if got := testutil.CollectAndCount(m.aggregateOps); got != 1 {
		t.Fatalf("aggregate op series: want=1 got=%d", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAggregateOperation("op", "success", time.Millisecond)
	m.IncAggregateConflict("op")
	m.IncCacheLookup("hit")
	m.IncEvent("post.created", true)
	if m.Registry() != nil {
		t.Fatal("nil metrics should have no registry")
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.IncEvent("post.created", false)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `postboard_events_published_total{status="failure",subject="post.created"} 1`) {
		t.Fatalf("expected event counter in output")
	}
}
