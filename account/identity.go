// Package account derives the cache-ready account identity produced by a
// successful token exchange.
package account

import (
	"strings"

	"github.com/jrsteele09/go-identity-client/token/clientinfo"
	"github.com/jrsteele09/go-identity-client/token/idtoken"
)

// Identity is the stable, cache-ready identity of an authenticated account.
// Two identities with the same object/tenant pair but different policies are
// distinct accounts: policy-partitioned authorities issue semantically
// different accounts under the same raw identifiers.
type Identity struct {
	// HomeAccountID is the uid.utid pair from client_info, suffixed with the
	// policy for policy-partitioned authorities.
	HomeAccountID string `json:"home_account_id"`

	// Environment is the authority host the account was issued by.
	Environment string `json:"environment"`

	// Realm is the tenant the account belongs to.
	Realm string `json:"realm"`

	// LocalAccountID is the account's object identifier within its tenant.
	LocalAccountID string `json:"local_account_id"`

	// Username is the preferred_username claim, kept for display and login hints.
	Username string `json:"username"`

	// Name is the account's display name.
	Name string `json:"name"`

	// Policy is the user-flow policy for policy-partitioned authorities,
	// empty otherwise.
	Policy string `json:"policy,omitempty"`
}

// Create builds an Identity from the client_info blob and the decoded ID token
// claims. The blob is authoritative for the home identifiers; claims fill in
// whatever the blob omits. policy must be empty for plain authorities.
func Create(ci *clientinfo.ClientInfo, environment string, claims *idtoken.Claims, policy string) *Identity {
	uid := ci.UID
	if uid == "" {
		uid = claims.ObjectID
	}
	if uid == "" {
		uid = claims.Subject
	}

	utid := ci.UTID
	if utid == "" {
		utid = claims.TenantID
	}

	homeAccountID := uid + "." + utid
	if policy != "" {
		homeAccountID = homeAccountID + "-" + policy
	}

	username := claims.PreferredUsername
	if username == "" {
		username = claims.UPN
	}

	return &Identity{
		HomeAccountID:  homeAccountID,
		Environment:    environment,
		Realm:          utid,
		LocalAccountID: uid,
		Username:       username,
		Name:           claims.Name,
		Policy:         policy,
	}
}

// Key returns the cache key for the identity. Keys are case-insensitive;
// the policy component is already folded into HomeAccountID.
func (id *Identity) Key() string {
	return strings.ToLower(strings.Join([]string{id.HomeAccountID, id.Environment, id.Realm}, "-"))
}

// Equal reports whether two identities refer to the same cached account.
func (id *Identity) Equal(other *Identity) bool {
	if id == nil || other == nil {
		return id == other
	}
	return id.Key() == other.Key()
}
