// Package telemetry captures the diagnostic record of each token exchange.
// Every exchange opens one scope and finalizes it exactly once, whatever the
// outcome.
package telemetry

import (
	"net/http"
	"net/url"
)

// Response headers copied into the diagnostic record when present.
const (
	HeaderUserAgent       = "User-Agent"
	HeaderRequestID       = "x-ms-request-id"
	HeaderClientTelemetry = "x-ms-clitelem"
)

// HTTPEvent is the diagnostic record of one token endpoint round trip. It is
// created at exchange start, mutated during the exchange, and dispatched
// exactly once when the scope closes.
type HTTPEvent struct {
	Method          string
	Path            string
	QueryParams     string
	ResponseStatus  int
	UserAgent       string
	RequestIDHeader string
	ClientTelemetry *ClientTelemetryInfo
	OAuthErrorCode  string
}

// NewHTTPEvent creates a diagnostic record for the given HTTP method.
func NewHTTPEvent(method string) *HTTPEvent {
	return &HTTPEvent{Method: method}
}

// SetURL records the path and query of the target URL. Failure to parse the
// URL is reported to the caller but must never abort the exchange.
func (e *HTTPEvent) SetURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	e.Path = u.Path
	e.QueryParams = u.RawQuery
	return nil
}

// RecordResponse captures the response status and the selected response
// headers. The client-telemetry header is parsed best-effort; a malformed
// header simply yields no sub-record.
func (e *HTTPEvent) RecordResponse(statusCode int, header http.Header) {
	e.ResponseStatus = statusCode

	if ua := header.Get(HeaderUserAgent); ua != "" {
		e.UserAgent = ua
	}
	if reqID := header.Get(HeaderRequestID); reqID != "" {
		e.RequestIDHeader = reqID
	}
	if raw := header.Get(HeaderClientTelemetry); raw != "" {
		e.ClientTelemetry = ParseClientTelemetry(raw)
	}
}
