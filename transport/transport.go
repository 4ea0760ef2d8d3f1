// Package transport provides the default HTTP sender for token exchanges.
// Timeout policy lives here; the exchange core never retries or times out on
// its own.
package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/go-identity-client/exchange"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

const defaultTimeout = 30 * time.Second

var _ exchange.Transport = (*Client)(nil)

// Client sends built token requests over net/http.
type Client struct {
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. to add proxy or
// TLS configuration.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a transport client.
func New(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Send performs the HTTP round trip and returns the raw response. The body is
// read fully so classification can parse it without holding the connection.
func (c *Client) Send(ctx context.Context, req *exchange.Request) (*exchange.Response, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.Wrapf(err, "token endpoint request failed")
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to read token endpoint response")
	}

	return &exchange.Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}
