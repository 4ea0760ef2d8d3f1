package oauth2

import "encoding/json"

// ErrorResponse represents the error response from an OAuth2 token request.
// This is the standard OAuth2 error format as defined in RFC 6749, extended
// with the identity-platform specific fields (error_codes, correlation_id,
// claims).
type ErrorResponse struct {
	// Error is the OAuth2 error code.
	// Example: "invalid_grant", "authorization_pending", "interaction_required"
	Error string `json:"error,omitempty"`

	// ErrorDescription is a human-readable explanation of the error.
	ErrorDescription string `json:"error_description,omitempty"`

	// ErrorCodes are service-internal numeric error codes.
	ErrorCodes []int `json:"error_codes,omitempty"`

	// CorrelationID echoes the correlation id of the failed request.
	CorrelationID string `json:"correlation_id,omitempty"`

	// Claims is a string-encoded JSON claims challenge, present on
	// conditional-access errors. It is passed through verbatim, never parsed.
	Claims string `json:"claims,omitempty"`
}

// ParseErrorResponse decodes a non-200 token endpoint body. An unparseable or
// empty body yields a zero-valued response; a blank error code is normalized
// by the classifier, not here.
func ParseErrorResponse(body []byte) *ErrorResponse {
	var er ErrorResponse
	if len(body) > 0 {
		_ = json.Unmarshal(body, &er)
	}
	return &er
}
