// Package credential provides the client-authentication strategies applied to
// token endpoint requests: none (public clients), shared secret, and signed
// JWT assertion backed by a certificate.
package credential

import (
	"strings"

	"github.com/jrsteele09/go-identity-client/exchange"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

var _ exchange.ClientAuthentication = None{}
var _ exchange.ClientAuthentication = SecretPost{}

// None authenticates a public client: only the client_id is sent.
type None struct {
	// ClientID identifies the application requesting tokens.
	// Example: "04b07795-8ddb-461a-bbee-02f9e1bf7b46"
	ClientID string
}

// NewNone creates a public-client authentication strategy.
func NewNone(clientID string) (None, error) {
	if strings.TrimSpace(clientID) == "" {
		return None{}, errs.ErrMissingClientID
	}
	return None{ClientID: clientID}, nil
}

// ApplyTo adds the client_id to the request.
func (n None) ApplyTo(req *exchange.Request) error {
	req.Form.Set("client_id", n.ClientID)
	return nil
}

// SecretPost authenticates a confidential client with a shared secret in the
// request body (client_secret_post).
type SecretPost struct {
	// ClientID identifies the application requesting tokens.
	ClientID string

	// Secret is the client secret.
	// Security: Never log or expose this value
	Secret string
}

// NewSecretPost creates a shared-secret authentication strategy.
func NewSecretPost(clientID, secret string) (SecretPost, error) {
	if strings.TrimSpace(clientID) == "" {
		return SecretPost{}, errs.ErrMissingClientID
	}
	return SecretPost{ClientID: clientID, Secret: secret}, nil
}

// ApplyTo adds the client_id and client_secret to the request.
func (s SecretPost) ApplyTo(req *exchange.Request) error {
	req.Form.Set("client_id", s.ClientID)
	req.Form.Set("client_secret", s.Secret)
	return nil
}
