// Package grants provides the parameter sets for the OAuth2 flows exercised
// against the token endpoint. Each grant serializes itself to the url-encoded
// form parameters its flow requires; client credentials are applied separately
// by the client-authentication strategy.
package grants

import (
	"net/url"

	"github.com/jrsteele09/go-identity-client/exchange"
	"github.com/jrsteele09/go-identity-client/oauth2"
)

var (
	_ exchange.Grant = AuthorizationCode{}
	_ exchange.Grant = RefreshToken{}
	_ exchange.Grant = ClientCredentials{}
	_ exchange.Grant = DeviceCode{}
)

// AuthorizationCode exchanges an authorization code for tokens.
type AuthorizationCode struct {
	// Code is the authorization code received from the authorization endpoint.
	// Required: Yes
	// Usage: Exchanged once for tokens, then becomes invalid
	Code string

	// RedirectURI must match the redirect_uri used in the authorization request.
	// Required: Yes
	RedirectURI string

	// CodeVerifier is the PKCE code verifier matching the code_challenge sent
	// in the authorization request.
	// Required: Yes if PKCE was used (always, for public clients)
	CodeVerifier string

	// Scope is the space-separated list of scopes being requested.
	// Required: No
	Scope string
}

// ToParameters serializes the grant into token endpoint form parameters.
func (g AuthorizationCode) ToParameters() url.Values {
	params := url.Values{}
	params.Set("grant_type", string(oauth2.AuthorizationCodeGrant))
	params.Set("code", g.Code)
	params.Set("redirect_uri", g.RedirectURI)
	if g.CodeVerifier != "" {
		params.Set("code_verifier", g.CodeVerifier)
	}
	if g.Scope != "" {
		params.Set("scope", g.Scope)
	}
	return params
}

// RefreshToken exchanges a refresh token for a new token set without user
// interaction.
type RefreshToken struct {
	// RefreshToken is the refresh token from a previous exchange.
	// Required: Yes
	// Security: Never log this value
	RefreshToken string

	// Scope optionally narrows the scopes of the new access token.
	Scope string
}

// ToParameters serializes the grant into token endpoint form parameters.
func (g RefreshToken) ToParameters() url.Values {
	params := url.Values{}
	params.Set("grant_type", string(oauth2.RefreshTokenGrant))
	params.Set("refresh_token", g.RefreshToken)
	if g.Scope != "" {
		params.Set("scope", g.Scope)
	}
	return params
}

// ClientCredentials obtains an app-only token with no user context. The
// client credential itself comes from the client-authentication strategy.
type ClientCredentials struct {
	// Scope is the resource scope being requested.
	// Example: "https://graph.microsoft.com/.default"
	Scope string
}

// ToParameters serializes the grant into token endpoint form parameters.
func (g ClientCredentials) ToParameters() url.Values {
	params := url.Values{}
	params.Set("grant_type", string(oauth2.ClientCredentialsGrant))
	if g.Scope != "" {
		params.Set("scope", g.Scope)
	}
	return params
}

// DeviceCode polls the token endpoint during the device authorization flow.
// The caller owns the polling loop; each poll is one independent exchange.
type DeviceCode struct {
	// DeviceCode is the device verification code from the device authorization
	// response.
	// Required: Yes
	DeviceCode string
}

// ToParameters serializes the grant into token endpoint form parameters.
func (g DeviceCode) ToParameters() url.Values {
	params := url.Values{}
	params.Set("grant_type", string(oauth2.DeviceCodeGrant))
	params.Set("device_code", g.DeviceCode)
	return params
}
