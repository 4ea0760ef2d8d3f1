// Package authority models the token-issuing authority an exchange targets.
// An authority is either plain (AAD-style) or policy-partitioned (B2C-style,
// where the same raw user identifiers represent different logical accounts
// depending on the user-flow policy).
package authority

import (
	"net/url"
	"strings"

	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

// Type discriminates the closed set of authority variants.
type Type string

const (
	TypePlain             Type = "plain"              // Single identity space per tenant
	TypePolicyPartitioned Type = "policy-partitioned" // Identities partitioned by user-flow policy
)

// Authority holds the resolved endpoints and variant of one authority.
// Values are immutable after construction.
type Authority struct {
	host          string
	tokenEndpoint string
	authorityType Type
	policy        string
}

// New creates a plain authority from its token endpoint URL.
func New(tokenEndpoint string) (*Authority, error) {
	host, err := hostOf(tokenEndpoint)
	if err != nil {
		return nil, err
	}
	return &Authority{
		host:          host,
		tokenEndpoint: tokenEndpoint,
		authorityType: TypePlain,
	}, nil
}

// NewPolicyPartitioned creates a policy-partitioned authority. The policy
// becomes part of every account identity the exchange derives.
func NewPolicyPartitioned(tokenEndpoint, policy string) (*Authority, error) {
	if strings.TrimSpace(policy) == "" {
		return nil, errs.ErrMissingPolicy
	}
	host, err := hostOf(tokenEndpoint)
	if err != nil {
		return nil, err
	}
	return &Authority{
		host:          host,
		tokenEndpoint: tokenEndpoint,
		authorityType: TypePolicyPartitioned,
		policy:        policy,
	}, nil
}

// TokenEndpointURL returns the token endpoint this authority issues from.
func (a *Authority) TokenEndpointURL() string {
	return a.tokenEndpoint
}

// Host returns the authority host, used as the environment of issued accounts.
func (a *Authority) Host() string {
	return a.host
}

// Type returns the authority variant.
func (a *Authority) Type() Type {
	return a.authorityType
}

// PolicyTag returns the user-flow policy for policy-partitioned authorities
// and the empty string otherwise, so callers never need to branch on the
// concrete variant.
func (a *Authority) PolicyTag() string {
	return a.policy
}

func hostOf(tokenEndpoint string) (string, error) {
	if strings.TrimSpace(tokenEndpoint) == "" {
		return "", errs.ErrMissingTokenEndpoint
	}
	u, err := url.Parse(tokenEndpoint)
	if err != nil {
		return "", errs.Wrapf(err, "invalid token endpoint %q", tokenEndpoint)
	}
	if u.Host == "" {
		return "", errs.ErrMissingAuthorityHost
	}
	return u.Host, nil
}
