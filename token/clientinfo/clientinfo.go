// Package clientinfo decodes the opaque client_info blob issued alongside
// tokens. The blob identifies the account independently of the ID token and is
// the authoritative source of the home account identifier.
package clientinfo

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

// ClientInfo is the decoded form of the base64url JSON client_info blob.
type ClientInfo struct {
	// UID is the unique object identifier of the account within its tenant.
	UID string `json:"uid"`

	// UTID is the tenant identifier the account belongs to.
	UTID string `json:"utid"`
}

// Decode parses a base64url-encoded client_info blob. Both padded and
// unpadded encodings are accepted, as authorities are inconsistent about
// padding.
func Decode(raw string) (*ClientInfo, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errs.ErrMalformedClientInfo
	}

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
	if err != nil {
		return nil, errs.Wrapf(errs.ErrMalformedClientInfo, "base64 decode failed: %v", err)
	}

	var ci ClientInfo
	if err := json.Unmarshal(decoded, &ci); err != nil {
		return nil, errs.Wrapf(errs.ErrMalformedClientInfo, "json decode failed: %v", err)
	}
	return &ci, nil
}

// HomeAccountID joins uid and utid into the stable home account identifier.
func (ci *ClientInfo) HomeAccountID() string {
	return ci.UID + "." + ci.UTID
}
