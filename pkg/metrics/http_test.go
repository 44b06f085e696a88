package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestRecordsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/members", "200", 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/members", "200", 30*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/members", "409", 5*time.Millisecond)

	expected := `
# HELP http_requests_total Total HTTP requests by method, route, and status.
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/api/v1/members",status="200"} 2
http_requests_total{method="POST",route="/api/v1/members",status="409"} 1
`
	if err := testutil.CollectAndCompare(m.requests, strings.NewReader(expected)); err != nil {
		t.Fatalf("unexpected counter state: %v", err)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/x", "200", time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("", "", "", time.Millisecond)
}
