package metrics

import (
	"strconv"
	"strings"
	"time"
)

// Paths the board serves for infrastructure rather than visitors
var infraPaths = map[string]bool{
	"/metrics": true,
	"/health":  true,
	"/ready":   true,
}

const staticPrefix = "/static/"

// RecordHTTPRequest counts a finished request against its route and
// status class and observes its latency
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, route, statusClass(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	})
}

// statusClass maps a status code to its class label ("2xx" ... "5xx");
// anything outside 100-599 is "unknown"
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// ShouldSkipEndpoint reports whether requests to path stay out of the
// request metrics: infrastructure endpoints and static assets
func ShouldSkipEndpoint(path string) bool {
	return infraPaths[path] || strings.HasPrefix(path, staticPrefix)
}
