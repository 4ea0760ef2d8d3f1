package exchange

import (
	"net/http"

	errs "github.com/jrsteele09/go-identity-client/internal/errors"
	"github.com/jrsteele09/go-identity-client/oauth2"
)

// parseSuccess interprets a 200 response. A body that does not parse, or
// parses without an access token, is a transport-class failure rather than a
// protocol classification.
func parseSuccess(body []byte) (*oauth2.TokenResponse, error) {
	payload, err := oauth2.ParseTokenResponse(body)
	if err != nil {
		return nil, &TransportError{Err: errs.Wrapf(err, "malformed token success response")}
	}
	return payload, nil
}

// classifyError interprets a non-200 response into one of the three
// classifications. Precedence is deliberate:
//
//  1. authorization_pending wins regardless of HTTP status, because some
//     servers return it with non-400 statuses during device-code polling.
//  2. interaction_required only counts on a 400.
//  3. everything else is a service error; a blank code normalizes to "unknown".
func classifyError(resp *Response) error {
	errResp := oauth2.ParseErrorResponse(resp.Body)
	rawBody := string(resp.Body)

	if errResp.Error == oauth2.ErrorAuthorizationPending {
		return &PendingError{
			Description: errResp.ErrorDescription,
			RawBody:     rawBody,
			StatusCode:  resp.StatusCode,
		}
	}

	if resp.StatusCode == http.StatusBadRequest && errResp.Error == oauth2.ErrorInteractionRequired {
		return &InteractionRequiredError{
			Description: errResp.ErrorDescription,
			RawBody:     rawBody,
			StatusCode:  resp.StatusCode,
			Claims:      errResp.Claims,
		}
	}

	code := errResp.Error
	if code == "" {
		code = oauth2.ErrorUnknown
	}
	return &ServiceError{
		ErrorCode:   code,
		Description: errResp.ErrorDescription,
		RawBody:     rawBody,
		StatusCode:  resp.StatusCode,
	}
}
