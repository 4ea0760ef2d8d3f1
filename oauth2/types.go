package oauth2

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
// Determines what credentials are required to obtain tokens.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Used in: Standard Authorization Code Flow
	// Token request includes: code, redirect_uri, code_verifier (if PKCE)
	// Returns: access_token, id_token, refresh_token (if requested)
	AuthorizationCodeGrant GrantType = "authorization_code"

	// ClientCredentialsGrant allows machine-to-machine authentication.
	// Used in: Backend service authentication (no user context)
	// Token request includes: client_id plus a client credential, scope
	// Returns: access_token (no refresh_token or id_token)
	ClientCredentialsGrant GrantType = "client_credentials"

	// RefreshTokenGrant exchanges a refresh token for new tokens.
	// Used in: Silent token renewal (no user interaction)
	// Token request includes: refresh_token
	// Returns: new access_token, id_token, and possibly a rotated refresh_token
	RefreshTokenGrant GrantType = "refresh_token"

	// DeviceCodeGrant polls for tokens during the device authorization flow.
	// Used in: Input-constrained devices (the user authenticates elsewhere)
	// Token request includes: device_code
	// Returns: tokens once the user approves; authorization_pending until then
	DeviceCodeGrant GrantType = "urn:ietf:params:oauth:grant-type:device_code"
)

// Well-known OAuth2 error codes this client classifies on.
const (
	// ErrorAuthorizationPending signals the device flow user has not yet
	// approved - the caller should keep polling.
	ErrorAuthorizationPending = "authorization_pending"

	// ErrorInteractionRequired signals a conditional-access claims challenge -
	// the caller must re-run the flow interactively.
	ErrorInteractionRequired = "interaction_required"

	// ErrorUnknown is substituted when the server omits an error code.
	ErrorUnknown = "unknown"
)
