package exchange

import (
	"time"

	"github.com/jrsteele09/go-identity-client/account"
	"github.com/jrsteele09/go-identity-client/authority"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
	"github.com/jrsteele09/go-identity-client/internal/utils"
	"github.com/jrsteele09/go-identity-client/oauth2"
	"github.com/jrsteele09/go-identity-client/token/clientinfo"
	"github.com/jrsteele09/go-identity-client/token/idtoken"
)

// AuthenticationResult is the normalized outcome of a successful exchange.
type AuthenticationResult struct {
	// AccessToken is the issued access token.
	AccessToken string

	// RefreshToken is the issued refresh token, empty when the flow does not
	// return one.
	RefreshToken string

	// IDToken is the raw ID token string, kept unparsed for the caller.
	IDToken string

	// Environment is the authority host the tokens were issued by.
	Environment string

	// ExpiresOn is the absolute expiry of the access token in epoch seconds.
	ExpiresOn int64

	// ExtExpiresOn is the absolute extended expiry in epoch seconds, or 0
	// when the server did not provide ext_expires_in. A genuinely zero
	// extended lifetime cannot be told apart from absence; the ambiguity is
	// preserved.
	ExtExpiresOn int64

	// Scopes is the space-separated granted scope string.
	Scopes string

	// FamilyID marks membership in a family of client IDs, empty otherwise.
	FamilyID string

	// Account is the cache-ready account identity, nil when the response did
	// not carry both an ID token and a client_info blob.
	Account *account.Identity
}

// assembleResult converts a success payload into an AuthenticationResult.
// capturedAt is sampled exactly once per exchange so ExpiresOn and
// ExtExpiresOn can never skew against each other.
func assembleResult(payload *oauth2.TokenResponse, auth *authority.Authority, capturedAt time.Time) (*AuthenticationResult, error) {
	var identity *account.Identity

	rawIDToken := utils.Value(payload.IdToken)
	if rawIDToken != "" {
		claims, err := idtoken.Decode(rawIDToken)
		if err != nil {
			return nil, &TransportError{Err: errs.Wrapf(err, "failed to decode id token")}
		}

		if payload.ClientInfo != "" {
			ci, err := clientinfo.Decode(payload.ClientInfo)
			if err != nil {
				return nil, &TransportError{Err: errs.Wrapf(err, "failed to decode client info")}
			}
			identity = account.Create(ci, auth.Host(), claims, auth.PolicyTag())
		}
	}

	now := capturedAt.Unix()

	extExpiresOn := int64(0)
	if payload.ExtExpiresIn > 0 {
		extExpiresOn = now + payload.ExtExpiresIn
	}

	return &AuthenticationResult{
		AccessToken:  utils.Value(payload.AccessToken),
		RefreshToken: utils.Value(payload.RefreshToken),
		IDToken:      rawIDToken,
		Environment:  auth.Host(),
		ExpiresOn:    now + payload.ExpiresIn,
		ExtExpiresOn: extExpiresOn,
		Scopes:       payload.Scope,
		FamilyID:     payload.Foci,
		Account:      identity,
	}, nil
}
