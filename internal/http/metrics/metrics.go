package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Collector counts HTTP traffic with lock-free counters.
type Collector struct {
	requests     uint64
	clientErrors uint64
	serverErrors uint64
	rateLimited  uint64
	inFlight     int64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Begin() {
	atomic.AddInt64(&c.inFlight, 1)
}

// Observe records a finished request by its response status.
func (c *Collector) Observe(status int) {
	atomic.AddInt64(&c.inFlight, -1)
	atomic.AddUint64(&c.requests, 1)
	switch {
	case status == http.StatusTooManyRequests:
		atomic.AddUint64(&c.rateLimited, 1)
		atomic.AddUint64(&c.clientErrors, 1)
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
}

type Snapshot struct {
	Requests     uint64
	ClientErrors uint64
	ServerErrors uint64
	RateLimited  uint64
	InFlight     int64
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Requests:     atomic.LoadUint64(&c.requests),
		ClientErrors: atomic.LoadUint64(&c.clientErrors),
		ServerErrors: atomic.LoadUint64(&c.serverErrors),
		RateLimited:  atomic.LoadUint64(&c.rateLimited),
		InFlight:     atomic.LoadInt64(&c.inFlight),
	}
}

// Handler exposes the collector in Prometheus text format.
type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var snap Snapshot
	if h.collector != nil {
		snap = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	writeMetric(w, "jobboard_http_requests_total", "counter", "Total number of HTTP requests.", snap.Requests)
	writeMetric(w, "jobboard_http_client_errors_total", "counter", "Total number of 4xx HTTP responses.", snap.ClientErrors)
	writeMetric(w, "jobboard_http_server_errors_total", "counter", "Total number of 5xx HTTP responses.", snap.ServerErrors)
	writeMetric(w, "jobboard_http_rate_limited_total", "counter", "Total number of requests rejected by rate limiting.", snap.RateLimited)
	writeMetric(w, "jobboard_http_in_flight_requests", "gauge", "Requests currently being served.", snap.InFlight)
}

func writeMetric[T uint64 | int64](w http.ResponseWriter, name, kind, help string, value T) {
	_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
	_, _ = fmt.Fprintf(w, "%s %d\n", name, value)
}
