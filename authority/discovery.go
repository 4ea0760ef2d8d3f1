package authority

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

// Discover resolves a plain authority from an OIDC issuer URL using the
// issuer's discovery document.
func Discover(ctx context.Context, issuer string) (*Authority, error) {
	endpoint, err := tokenEndpointFor(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return New(endpoint)
}

// DiscoverPolicyPartitioned resolves a policy-partitioned authority from an
// OIDC issuer URL. Policy-partitioned issuers publish one discovery document
// per user-flow policy, so the issuer URL already embeds the policy; the
// policy is still carried explicitly for identity partitioning.
func DiscoverPolicyPartitioned(ctx context.Context, issuer, policy string) (*Authority, error) {
	endpoint, err := tokenEndpointFor(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return NewPolicyPartitioned(endpoint, policy)
}

func tokenEndpointFor(ctx context.Context, issuer string) (string, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return "", errs.Wrapf(err, "authority discovery failed for %q", issuer)
	}
	return provider.Endpoint().TokenURL, nil
}
