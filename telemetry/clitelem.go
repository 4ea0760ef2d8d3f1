package telemetry

import "strings"

const (
	clientTelemetrySchemaVersion = "1"
	clientTelemetryFieldCount    = 5
)

// ClientTelemetryInfo is the decoded x-ms-clitelem response header: a compact
// comma-delimited sub-protocol carrying server-side error detail and
// throttling hints.
type ClientTelemetryInfo struct {
	ServerErrorCode    string
	ServerSubErrorCode string
	TokenAge           string
	SpeInfo            string
}

// ParseClientTelemetry decodes the header best-effort. Anything other than a
// schema-version-1 header with the expected field count yields nil; a
// malformed header never affects the outcome of the exchange.
func ParseClientTelemetry(headerValue string) *ClientTelemetryInfo {
	fields := strings.Split(headerValue, ",")
	if len(fields) != clientTelemetryFieldCount {
		return nil
	}
	if fields[0] != clientTelemetrySchemaVersion {
		return nil
	}
	return &ClientTelemetryInfo{
		ServerErrorCode:    fields[1],
		ServerSubErrorCode: fields[2],
		TokenAge:           fields[3],
		SpeInfo:            fields[4],
	}
}
