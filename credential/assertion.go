package credential

import (
	"encoding/base64"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-identity-client/exchange"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

const (
	assertionType     = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
	assertionLifetime = 10 * time.Minute
)

var _ exchange.ClientAuthentication = (*Assertion)(nil)

// Assertion authenticates a confidential client with a signed JWT
// (private_key_jwt). A fresh assertion is signed per request because the
// audience is the token endpoint being called.
type Assertion struct {
	clientID    string
	certificate *Certificate
	nowTime     func() time.Time // nowTime function (injectable for testing)
}

// AssertionOption defines a function type to modify the Assertion instance.
type AssertionOption func(*Assertion)

// WithAssertionNowTime sets the now time function (primarily for testing)
func WithAssertionNowTime(nowFunc func() time.Time) AssertionOption {
	return func(a *Assertion) {
		a.nowTime = nowFunc
	}
}

// NewAssertion creates a signed-assertion authentication strategy.
func NewAssertion(clientID string, certificate *Certificate, options ...AssertionOption) (*Assertion, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, errs.ErrMissingClientID
	}
	if certificate == nil || certificate.PrivateKey == nil {
		return nil, errs.ErrMissingCertificate
	}

	assertion := &Assertion{
		clientID:    clientID,
		certificate: certificate,
		nowTime:     time.Now,
	}

	for _, opt := range options {
		opt(assertion)
	}

	return assertion, nil
}

// ApplyTo adds the client_id and a freshly signed client assertion to the
// request.
func (a *Assertion) ApplyTo(req *exchange.Request) error {
	signed, err := a.signAssertion(req.URL)
	if err != nil {
		return err
	}

	req.Form.Set("client_id", a.clientID)
	req.Form.Set("client_assertion_type", assertionType)
	req.Form.Set("client_assertion", signed)
	return nil
}

// signAssertion signs the private_key_jwt claims for the given token endpoint.
func (a *Assertion) signAssertion(tokenEndpoint string) (string, error) {
	now := a.nowTime()

	claims := jwtlib.MapClaims{
		"aud": tokenEndpoint,                     // The token endpoint being called
		"iss": a.clientID,                        // The client asserting its own identity
		"sub": a.clientID,                        // Same as the issuer for client assertions
		"jti": uuid.New().String(),               // Unique assertion ID, prevents replay
		"iat": now.Unix(),                        // Issued at
		"nbf": now.Unix(),                        // Not before
		"exp": now.Add(assertionLifetime).Unix(), // Short-lived on purpose
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims)
	token.Header["x5t"] = base64.StdEncoding.EncodeToString(a.certificate.Thumbprint)

	signed, err := token.SignedString(a.certificate.PrivateKey)
	if err != nil {
		return "", errors.Wrap(err, "[signAssertion] failed to sign client assertion")
	}
	return signed, nil
}
