package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCollectorObserve(t *testing.T) {
	c := NewCollector()
	for _, status := range []int{200, 201, 404, 429, 500} {
		c.Begin()
		c.Observe(status)
	}
	snap := c.Snapshot()
	if snap.Requests != 5 || snap.ClientErrors != 2 || snap.ServerErrors != 1 || snap.RateLimited != 1 || snap.InFlight != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestHandlerRendersCounters(t *testing.T) {
	c := NewCollector()
	c.Begin()
	c.Observe(http.StatusOK)
	rec := httptest.NewRecorder()
	NewHandler(c).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "jobboard_http_requests_total 1\n") {
		t.Fatalf("missing request counter in:\n%s", body)
	}
	if !strings.Contains(body, "# TYPE jobboard_http_in_flight_requests gauge") {
		t.Fatalf("missing gauge type in:\n%s", body)
	}
}
