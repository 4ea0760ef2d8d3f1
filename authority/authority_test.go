package authority_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-identity-client/authority"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

const testTokenEndpoint = "https://login.example.com/tenant-1/oauth2/v2.0/token"

func TestNew(t *testing.T) {
	auth, err := authority.New(testTokenEndpoint)
	require.NoError(t, err)
	require.Equal(t, testTokenEndpoint, auth.TokenEndpointURL())
	require.Equal(t, "login.example.com", auth.Host())
	require.Equal(t, authority.TypePlain, auth.Type())
	require.Empty(t, auth.PolicyTag())
}

func TestNewRejectsBlankEndpoint(t *testing.T) {
	_, err := authority.New("   ")
	require.ErrorIs(t, err, errs.ErrMissingTokenEndpoint)
}

func TestNewRejectsHostlessEndpoint(t *testing.T) {
	_, err := authority.New("/relative/path/token")
	require.ErrorIs(t, err, errs.ErrMissingAuthorityHost)
}

func TestNewPolicyPartitioned(t *testing.T) {
	auth, err := authority.NewPolicyPartitioned(testTokenEndpoint, "b2c_1_signin")
	require.NoError(t, err)
	require.Equal(t, authority.TypePolicyPartitioned, auth.Type())
	require.Equal(t, "b2c_1_signin", auth.PolicyTag())
}

func TestNewPolicyPartitionedRequiresPolicy(t *testing.T) {
	_, err := authority.NewPolicyPartitioned(testTokenEndpoint, " ")
	require.ErrorIs(t, err, errs.ErrMissingPolicy)
}

func TestDiscover(t *testing.T) {
	var issuer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 issuer,
			"authorization_endpoint": issuer + "/oauth2/v2.0/authorize",
			"token_endpoint":         issuer + "/oauth2/v2.0/token",
			"jwks_uri":               issuer + "/discovery/v2.0/keys",
		})
	}))
	defer server.Close()
	issuer = server.URL

	auth, err := authority.Discover(context.Background(), issuer)
	require.NoError(t, err)
	require.Equal(t, issuer+"/oauth2/v2.0/token", auth.TokenEndpointURL())
	require.Equal(t, authority.TypePlain, auth.Type())
}

func TestDiscoverFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := authority.Discover(context.Background(), server.URL)
	require.Error(t, err)
}
