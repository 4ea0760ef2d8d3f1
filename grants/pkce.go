package grants

import "golang.org/x/oauth2"

// NewCodeVerifier generates a PKCE code verifier for an authorization-code
// flow. Keep it for the token exchange; send its challenge in the
// authorization request.
func NewCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// CodeChallengeS256 derives the S256 code challenge for a verifier.
func CodeChallengeS256(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}
