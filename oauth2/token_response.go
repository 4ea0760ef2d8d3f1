package oauth2

import (
	"encoding/json"

	errs "github.com/jrsteele09/go-identity-client/internal/errors"
	"github.com/jrsteele09/go-identity-client/internal/utils"
)

// TokenResponse represents the success response from an OAuth2 token request.
// This is the standard OAuth2 token endpoint response format as defined in RFC 6749,
// extended with the identity-platform specific fields returned by AAD-style
// authorities (ext_expires_in, client_info, foci).
type TokenResponse struct {
	// AccessToken is the token used to access protected resources.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Include in Authorization header: "Bearer <access_token>"
	// Required: Yes - a 200 response without it is treated as malformed
	AccessToken *string `json:"access_token,omitempty"`

	// IdToken is the OpenID Connect ID token containing user identity information.
	// Example: "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Middle segment is decoded to derive the account identity
	// Only present: When "openid" scope was requested
	IdToken *string `json:"id_token,omitempty"`

	// TokenType indicates how to use the access token (typically "Bearer").
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3600 (for 1 hour)
	ExpiresIn int64 `json:"expires_in,omitempty"`

	// ExtExpiresIn is the extended lifetime in seconds of the access token,
	// honoured by some authorities during service degradation.
	// Note: 0 is indistinguishable from "not provided" - callers treat 0 as absent
	ExtExpiresIn int64 `json:"ext_expires_in,omitempty"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Example: "tGzv3JOkF0XG5Qx2TlKWIA"
	// Usage: Send to the token endpoint with grant_type=refresh_token
	RefreshToken *string `json:"refresh_token,omitempty"`

	// Scope indicates the access token's granted permissions.
	// Example: "openid profile email api.read"
	// Note: May be less than requested if some scopes were denied
	Scope string `json:"scope,omitempty"`

	// ClientInfo is an opaque base64url-encoded JSON blob identifying the
	// account independently of the ID token.
	ClientInfo string `json:"client_info,omitempty"`

	// Foci marks the client as a member of a family of client IDs, allowing
	// the refresh token to be shared across the family.
	Foci string `json:"foci,omitempty"`
}

// ParseTokenResponse decodes a 200 token endpoint body. A body whose
// access_token is missing or blank is malformed, not a protocol error.
func ParseTokenResponse(body []byte) (*TokenResponse, error) {
	var tr TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, errs.Wrapf(err, "failed to parse token response")
	}
	if utils.Value(tr.AccessToken) == "" {
		return nil, errs.ErrMissingAccessToken
	}
	return &tr, nil
}
