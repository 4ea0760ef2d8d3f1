// Package exchange performs one OAuth2/OIDC token-endpoint round trip:
// build the request, send it through the transport, classify the response,
// and assemble the authentication result. It never retries, never caches,
// and raises every failure to the caller after telemetry is recorded.
package exchange

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-identity-client/authority"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

// Grant produces the form parameters of the OAuth2 flow being exercised.
// Implementations live in the grants package; the exchange never inspects
// which flow it holds.
type Grant interface {
	ToParameters() url.Values
}

// ClientAuthentication adds client credentials to an outgoing request. It is
// applied after the grant parameters so credential material may augment or
// override them. Implementations live in the credential package.
type ClientAuthentication interface {
	ApplyTo(req *Request) error
}

// Request is a prepared token endpoint request. It is built once per exchange
// and treated as immutable afterwards.
type Request struct {
	URL    string
	Method string
	Header http.Header
	Form   url.Values
}

// Body returns the url-encoded form body.
func (r *Request) Body() string {
	return r.Form.Encode()
}

// HTTPRequest converts the request into a net/http request for a transport.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, r.Method, r.URL, strings.NewReader(r.Body()))
	if err != nil {
		return nil, errs.Wrapf(err, "failed to create http request")
	}
	for name, values := range r.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	return httpReq, nil
}

// Response is the raw reply from the token endpoint. It is not interpreted
// beyond what classification needs.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport sends a built request and returns the raw response. Timeout
// policy belongs to the transport, never to the exchange.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// BuildRequest assembles the token endpoint request for an authority, grant,
// static headers and client-authentication strategy. A missing or malformed
// token endpoint fails with a ConfigurationError before any network call.
//
// BuildRequest is exported separately from Execute for flows that need a
// custom transport, such as long-lived polling loops reusing one request shape.
func BuildRequest(auth *authority.Authority, grant Grant, header http.Header, clientAuth ClientAuthentication) (*Request, error) {
	if auth == nil || strings.TrimSpace(auth.TokenEndpointURL()) == "" {
		return nil, &ConfigurationError{Reason: "token endpoint is not specified", Err: errs.ErrMissingTokenEndpoint}
	}
	if _, err := url.Parse(auth.TokenEndpointURL()); err != nil {
		return nil, &ConfigurationError{Reason: "malformed token endpoint", Err: err}
	}
	if grant == nil {
		return nil, &ConfigurationError{Reason: "grant is required", Err: errs.ErrMissingGrant}
	}

	req := &Request{
		URL:    auth.TokenEndpointURL(),
		Method: http.MethodPost,
		Header: http.Header{},
		Form:   url.Values{},
	}

	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	for name, values := range grant.ToParameters() {
		for _, v := range values {
			req.Form.Add(name, v)
		}
	}

	// Credentials go on last so assertion or secret material can override
	// base parameters.
	if clientAuth != nil {
		if err := clientAuth.ApplyTo(req); err != nil {
			return nil, &ConfigurationError{Reason: "failed to apply client authentication", Err: err}
		}
	}

	return req, nil
}
