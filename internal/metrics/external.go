package metrics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// numeric path segments (post, user and comment ids)
	idSegmentPattern = regexp.MustCompile(`/\d+(/|$)`)
)

// RecordExternalAPICall records board API call metrics
func (m *Metrics) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		endpoint = normalizeEndpoint(endpoint)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())

		// Record errors for both network errors and HTTP error status codes
		if err != nil || statusCode >= 400 {
			errorType := getErrorType(statusCode, err)
			m.ExternalAPIErrors.WithLabelValues(endpoint, errorType).Inc()
		}
	})
}

// normalizeEndpoint converts actual IDs to templates
// Example: http://board/api/posts/42/comments -> http://board/api/posts/{id}/comments
func normalizeEndpoint(endpoint string) string {
	// ReplaceAll does not revisit the shared slash, so run until stable
	for {
		next := idSegmentPattern.ReplaceAllString(endpoint, "/{id}$1")
		if next == endpoint {
			return next
		}
		endpoint = next
	}
}

// getErrorType categorizes error types based on status code and error
func getErrorType(statusCode int, err error) string {
	switch {
	case statusCode == 400:
		return "bad_request"
	case statusCode == 401:
		return "unauthorized"
	case statusCode == 403:
		return "forbidden"
	case statusCode == 404:
		return "not_found"
	case statusCode == 408:
		return "request_timeout"
	case statusCode == 429:
		return "too_many_requests"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode == 500:
		return "internal_server_error"
	case statusCode == 502:
		return "bad_gateway"
	case statusCode == 503:
		return "service_unavailable"
	case statusCode == 504:
		return "gateway_timeout"
	case statusCode >= 500 && statusCode < 600:
		return "server_error"
	}

	if err != nil {
		errMsg := err.Error()

		switch {
		case strings.Contains(errMsg, "connection refused"):
			return "connection_refused"
		case strings.Contains(errMsg, "no such host"):
			return "dns_error"
		case strings.Contains(errMsg, "timeout"), strings.Contains(errMsg, "deadline exceeded"):
			return "timeout"
		case strings.Contains(errMsg, "context canceled"):
			return "canceled"
		case strings.Contains(errMsg, "EOF"), strings.Contains(errMsg, "connection reset"):
			return "connection_reset"
		case strings.Contains(errMsg, "TLS"), strings.Contains(errMsg, "certificate"):
			return "tls_error"
		}
		return "network_error"
	}

	return "unknown"
}
