package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-identity-client/authority"
	"github.com/jrsteele09/go-identity-client/exchange"
	"github.com/jrsteele09/go-identity-client/transport"
)

type staticGrant url.Values

func (g staticGrant) ToParameters() url.Values { return url.Values(g) }

func TestSend(t *testing.T) {
	var gotBody string
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotBody = r.PostForm.Encode()

		w.Header().Set("x-ms-request-id", "req-1")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	auth, err := authority.New(server.URL + "/token")
	require.NoError(t, err)

	req, err := exchange.BuildRequest(auth, staticGrant{"grant_type": {"refresh_token"}}, nil, nil)
	require.NoError(t, err)

	resp, err := transport.New().Send(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "req-1", resp.Header.Get("x-ms-request-id"))
	require.JSONEq(t, `{"error":"invalid_grant"}`, string(resp.Body))
	require.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	require.Equal(t, "grant_type=refresh_token", gotBody)
}

func TestSendConnectionFailure(t *testing.T) {
	auth, err := authority.New("http://127.0.0.1:1/token")
	require.NoError(t, err)

	req, err := exchange.BuildRequest(auth, staticGrant{"grant_type": {"x"}}, nil, nil)
	require.NoError(t, err)

	_, err = transport.New().Send(context.Background(), req)
	require.Error(t, err)
}
