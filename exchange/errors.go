package exchange

import (
	"fmt"

	"github.com/jrsteele09/go-identity-client/oauth2"
)

// ConfigurationError reports a request that could not be built. It is raised
// before any network call and is never worth retrying.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TransportError reports a network, I/O, or response-parse failure, including
// a malformed success payload or an undecodable ID token segment. The
// underlying error is surfaced unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// PendingError reports authorization_pending: the user has not completed
// authentication yet. The caller decides the polling interval and deadline.
type PendingError struct {
	Description string
	RawBody     string
	StatusCode  int
}

func (e *PendingError) Error() string {
	return oauth2.ErrorAuthorizationPending + ": " + e.Description
}

// Code returns the normalized OAuth2 error code of the classification.
func (e *PendingError) Code() string { return oauth2.ErrorAuthorizationPending }

// InteractionRequiredError reports a conditional-access claims challenge: the
// caller must re-run the flow interactively. Claims carries the raw claims
// string for inclusion in the follow-up request.
type InteractionRequiredError struct {
	Description string
	RawBody     string
	StatusCode  int
	Claims      string
}

func (e *InteractionRequiredError) Error() string {
	return oauth2.ErrorInteractionRequired + ": " + e.Description
}

// Code returns the normalized OAuth2 error code of the classification.
func (e *InteractionRequiredError) Code() string { return oauth2.ErrorInteractionRequired }

// ServiceError reports any other non-200 token endpoint response. ErrorCode
// is "unknown" when the server omits one; RawBody is kept for diagnostics.
type ServiceError struct {
	ErrorCode   string
	Description string
	RawBody     string
	StatusCode  int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("token endpoint error %q (status %d): %s", e.ErrorCode, e.StatusCode, e.Description)
}

// Code returns the normalized OAuth2 error code of the classification.
func (e *ServiceError) Code() string { return e.ErrorCode }

// classifiedCode extracts the normalized error code from a classified error,
// or "" for anything outside the classification taxonomy.
func classifiedCode(err error) string {
	type coder interface{ Code() string }
	if c, ok := err.(coder); ok {
		return c.Code()
	}
	return ""
}
