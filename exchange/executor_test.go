package exchange_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-identity-client/authority"
	"github.com/jrsteele09/go-identity-client/exchange"
	"github.com/jrsteele09/go-identity-client/headers"
	"github.com/jrsteele09/go-identity-client/telemetry"
	"github.com/jrsteele09/go-identity-client/telemetry/telemetryfakes"
)

const (
	testTokenEndpoint = "https://login.example.com/tenant-1/oauth2/v2.0/token?api-version=1.0"
	testEnvironment   = "login.example.com"
	testAccessToken   = "AT1"
	testTenantID      = "tenant1"
	testObjectID      = "obj1"
	testPolicy        = "p1"
	testCapturedUnix  = int64(1_700_000_000)
)

// fakeTransport returns a canned response or error for every send.
type fakeTransport struct {
	response *exchange.Response
	err      error
	requests []*exchange.Request
}

func (ft *fakeTransport) Send(_ context.Context, req *exchange.Request) (*exchange.Response, error) {
	ft.requests = append(ft.requests, req)
	if ft.err != nil {
		return nil, ft.err
	}
	return ft.response, nil
}

// staticGrant implements exchange.Grant with fixed parameters.
type staticGrant url.Values

func (g staticGrant) ToParameters() url.Values { return url.Values(g) }

type testFixture struct {
	transport *fakeTransport
	recorder  *telemetryfakes.FakeRecorder
	executor  *exchange.Executor
	authority *authority.Authority
}

func setupTestFixture(t *testing.T, response *exchange.Response, transportErr error) *testFixture {
	t.Helper()

	ft := &fakeTransport{response: response, err: transportErr}
	recorder := telemetryfakes.NewFakeRecorder()

	executor, err := exchange.NewExecutor(ft,
		exchange.WithRecorder(recorder),
		exchange.WithNowTime(func() time.Time { return time.Unix(testCapturedUnix, 0) }),
	)
	require.NoError(t, err)

	auth, err := authority.New(testTokenEndpoint)
	require.NoError(t, err)

	return &testFixture{
		transport: ft,
		recorder:  recorder,
		executor:  executor,
		authority: auth,
	}
}

func (f *testFixture) execute(t *testing.T) (*exchange.AuthenticationResult, error) {
	t.Helper()
	grant := staticGrant{"grant_type": {"client_credentials"}}
	return f.executor.Execute(context.Background(), f.authority, grant, headers.Default(headers.NewCorrelationID()), nil)
}

func makeIDToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(header) + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func makeClientInfo(t *testing.T, uid, utid string) string {
	t.Helper()
	blob, err := json.Marshal(map[string]string{"uid": uid, "utid": utid})
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(blob)
}

func successResponse(t *testing.T, body map[string]any) *exchange.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return &exchange.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: raw}
}

func errorResponse(t *testing.T, status int, body map[string]any) *exchange.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return &exchange.Response{StatusCode: status, Header: http.Header{}, Body: raw}
}

func TestExecuteSuccessComputesExpiry(t *testing.T) {
	f := setupTestFixture(t, successResponse(t, map[string]any{
		"access_token":   testAccessToken,
		"token_type":     "Bearer",
		"expires_in":     3600,
		"ext_expires_in": 0,
	}), nil)

	result, err := f.execute(t)
	require.NoError(t, err)
	require.Equal(t, testAccessToken, result.AccessToken)
	require.Equal(t, testCapturedUnix+3600, result.ExpiresOn)
	require.Equal(t, int64(0), result.ExtExpiresOn)
	require.Equal(t, testEnvironment, result.Environment)
	require.Nil(t, result.Account)
}

func TestExecuteSuccessExtendedExpiry(t *testing.T) {
	f := setupTestFixture(t, successResponse(t, map[string]any{
		"access_token":   testAccessToken,
		"expires_in":     3600,
		"ext_expires_in": 600,
	}), nil)

	result, err := f.execute(t)
	require.NoError(t, err)
	require.Equal(t, testCapturedUnix+600, result.ExtExpiresOn)
}

func TestExecuteBuildsAccountIdentity(t *testing.T) {
	idToken := makeIDToken(t, map[string]any{"tid": testTenantID, "oid": testObjectID})

	f := setupTestFixture(t, successResponse(t, map[string]any{
		"access_token": testAccessToken,
		"expires_in":   3600,
		"id_token":     idToken,
		"client_info":  makeClientInfo(t, testObjectID, testTenantID),
	}), nil)

	result, err := f.execute(t)
	require.NoError(t, err)
	require.NotNil(t, result.Account)
	require.Equal(t, testEnvironment, result.Account.Environment)
	require.Equal(t, testObjectID, result.Account.LocalAccountID)
	require.Equal(t, testTenantID, result.Account.Realm)
	require.Empty(t, result.Account.Policy)
	require.Equal(t, idToken, result.IDToken)
}

func TestExecutePolicyPartitionsIdentity(t *testing.T) {
	idToken := makeIDToken(t, map[string]any{"tid": testTenantID, "oid": testObjectID})
	body := map[string]any{
		"access_token": testAccessToken,
		"expires_in":   3600,
		"id_token":     idToken,
		"client_info":  makeClientInfo(t, testObjectID, testTenantID),
	}

	plain := setupTestFixture(t, successResponse(t, body), nil)
	plainResult, err := plain.execute(t)
	require.NoError(t, err)

	partitioned := setupTestFixture(t, successResponse(t, body), nil)
	policyAuthority, err := authority.NewPolicyPartitioned(testTokenEndpoint, testPolicy)
	require.NoError(t, err)
	partitioned.authority = policyAuthority

	policyResult, err := partitioned.execute(t)
	require.NoError(t, err)

	require.Equal(t, testPolicy, policyResult.Account.Policy)
	require.NotEqual(t, plainResult.Account.Key(), policyResult.Account.Key())
	require.False(t, plainResult.Account.Equal(policyResult.Account))
}

func TestExecuteNoClientInfoNoAccount(t *testing.T) {
	idToken := makeIDToken(t, map[string]any{"tid": testTenantID, "oid": testObjectID})

	f := setupTestFixture(t, successResponse(t, map[string]any{
		"access_token": testAccessToken,
		"expires_in":   3600,
		"id_token":     idToken,
	}), nil)

	result, err := f.execute(t)
	require.NoError(t, err)
	require.Nil(t, result.Account)
}

func TestExecuteMalformedIDTokenIsTransportFailure(t *testing.T) {
	f := setupTestFixture(t, successResponse(t, map[string]any{
		"access_token": testAccessToken,
		"expires_in":   3600,
		"id_token":     "not-a-jwt",
		"client_info":  makeClientInfo(t, testObjectID, testTenantID),
	}), nil)

	_, err := f.execute(t)
	var transportErr *exchange.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestExecuteMissingAccessTokenIsTransportFailure(t *testing.T) {
	f := setupTestFixture(t, successResponse(t, map[string]any{
		"token_type": "Bearer",
		"expires_in": 3600,
	}), nil)

	_, err := f.execute(t)
	var transportErr *exchange.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, 1, f.recorder.RecordCount())
}

func TestExecutePendingAtAnyStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusInternalServerError} {
		f := setupTestFixture(t, errorResponse(t, status, map[string]any{
			"error":             "authorization_pending",
			"error_description": "user has not signed in yet",
		}), nil)

		_, err := f.execute(t)
		var pending *exchange.PendingError
		require.ErrorAs(t, err, &pending, "status %d", status)
		require.Equal(t, status, pending.StatusCode)
		require.Equal(t, "user has not signed in yet", pending.Description)
		require.Equal(t, "authorization_pending", f.recorder.LastEvent().OAuthErrorCode)
	}
}

func TestExecuteInteractionRequiredCarriesClaims(t *testing.T) {
	claims := `{"access_token":{"polids":{"essential":true}}}`
	f := setupTestFixture(t, errorResponse(t, http.StatusBadRequest, map[string]any{
		"error":             "interaction_required",
		"error_description": "conditional access",
		"claims":            claims,
	}), nil)

	_, err := f.execute(t)
	var interaction *exchange.InteractionRequiredError
	require.ErrorAs(t, err, &interaction)
	require.Equal(t, claims, interaction.Claims)
	require.NotEmpty(t, interaction.RawBody)
	require.Equal(t, "interaction_required", f.recorder.LastEvent().OAuthErrorCode)
}

func TestExecuteInteractionRequiredOnlyOn400(t *testing.T) {
	f := setupTestFixture(t, errorResponse(t, http.StatusUnauthorized, map[string]any{
		"error": "interaction_required",
	}), nil)

	_, err := f.execute(t)
	var service *exchange.ServiceError
	require.ErrorAs(t, err, &service)
	require.Equal(t, "interaction_required", service.ErrorCode)
}

func TestExecuteBlankErrorCodeNormalizedToUnknown(t *testing.T) {
	f := setupTestFixture(t, errorResponse(t, http.StatusInternalServerError, map[string]any{
		"error_description": "something broke",
	}), nil)

	_, err := f.execute(t)
	var service *exchange.ServiceError
	require.ErrorAs(t, err, &service)
	require.Equal(t, "unknown", service.ErrorCode)
	require.Equal(t, "unknown", f.recorder.LastEvent().OAuthErrorCode)
}

func TestExecuteTransportErrorSurfaced(t *testing.T) {
	sendErr := errors.New("connection refused")
	f := setupTestFixture(t, nil, sendErr)

	_, err := f.execute(t)
	var transportErr *exchange.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.ErrorIs(t, err, sendErr)
	require.Equal(t, 1, f.recorder.RecordCount())
}

func TestExecuteDeterministicResults(t *testing.T) {
	idToken := makeIDToken(t, map[string]any{"tid": testTenantID, "oid": testObjectID})
	body := map[string]any{
		"access_token":   testAccessToken,
		"refresh_token":  "RT1",
		"expires_in":     3600,
		"ext_expires_in": 600,
		"scope":          "openid profile",
		"foci":           "1",
		"id_token":       idToken,
		"client_info":    makeClientInfo(t, testObjectID, testTenantID),
	}

	f := setupTestFixture(t, successResponse(t, body), nil)
	first, err := f.execute(t)
	require.NoError(t, err)

	second, err := f.execute(t)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExecuteFinalizesTelemetryExactlyOncePerOutcome(t *testing.T) {
	scenarios := map[string]*exchange.Response{
		"success": successResponse(t, map[string]any{
			"access_token": testAccessToken,
			"expires_in":   3600,
		}),
		"pending": errorResponse(t, http.StatusBadRequest, map[string]any{
			"error": "authorization_pending",
		}),
		"interaction required": errorResponse(t, http.StatusBadRequest, map[string]any{
			"error": "interaction_required",
		}),
		"service error": errorResponse(t, http.StatusServiceUnavailable, map[string]any{
			"error": "temporarily_unavailable",
		}),
	}

	for name, response := range scenarios {
		t.Run(name, func(t *testing.T) {
			f := setupTestFixture(t, response, nil)
			_, _ = f.execute(t)
			require.Equal(t, 1, f.recorder.RecordCount())
		})
	}
}

func TestExecuteRecordsResponseHeaders(t *testing.T) {
	response := successResponse(t, map[string]any{
		"access_token": testAccessToken,
		"expires_in":   3600,
	})
	response.Header.Set(telemetry.HeaderUserAgent, "test-agent")
	response.Header.Set(telemetry.HeaderRequestID, "req-123")
	response.Header.Set(telemetry.HeaderClientTelemetry, "1,0,0,,I")

	f := setupTestFixture(t, response, nil)
	_, err := f.execute(t)
	require.NoError(t, err)

	event := f.recorder.LastEvent()
	require.Equal(t, http.MethodPost, event.Method)
	require.Equal(t, "/tenant-1/oauth2/v2.0/token", event.Path)
	require.Equal(t, "api-version=1.0", event.QueryParams)
	require.Equal(t, http.StatusOK, event.ResponseStatus)
	require.Equal(t, "test-agent", event.UserAgent)
	require.Equal(t, "req-123", event.RequestIDHeader)
	require.NotNil(t, event.ClientTelemetry)
	require.Equal(t, "0", event.ClientTelemetry.ServerErrorCode)
	require.Empty(t, event.OAuthErrorCode)
}

func TestExecuteMissingEndpointIsConfigurationError(t *testing.T) {
	f := setupTestFixture(t, nil, nil)
	grant := staticGrant{"grant_type": {"client_credentials"}}

	_, err := f.executor.Execute(context.Background(), nil, grant, nil, nil)
	var configErr *exchange.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	require.Empty(t, f.transport.requests, "no network call may be attempted")
	require.Equal(t, 1, f.recorder.RecordCount(), "telemetry is still finalized")
}
