// Package idtoken decodes the claims segment of an OpenID Connect ID token.
// Decoding is unverified on purpose: signature validation belongs to the
// authority trust layer, this package only extracts the identity claims needed
// to build an account.
package idtoken

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

// Claims holds the identity claims extracted from an ID token.
type Claims struct {
	Issuer            string // iss - the authority that issued the token
	Subject           string // sub - pairwise subject identifier
	ObjectID          string // oid - the account's object identifier
	TenantID          string // tid - the issuing tenant
	PreferredUsername string // preferred_username - login hint for the account
	Name              string // name - display name
	Email             string // email
	UPN               string // upn - legacy user principal name
}

// Decode parses the middle segment of a raw ID token into Claims without
// verifying the signature. A token that does not decode is a hard error -
// silently dropping it would corrupt account derivation downstream.
func Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errs.ErrMalformedIDToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errs.Wrapf(errs.ErrMalformedIDToken, "parse failed: %v", err)
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errs.ErrMalformedIDToken
	}

	iss, _ := mapClaims["iss"].(string)
	sub, _ := mapClaims["sub"].(string)
	oid, _ := mapClaims["oid"].(string)
	tid, _ := mapClaims["tid"].(string)
	preferredUsername, _ := mapClaims["preferred_username"].(string)
	name, _ := mapClaims["name"].(string)
	email, _ := mapClaims["email"].(string)
	upn, _ := mapClaims["upn"].(string)

	return &Claims{
		Issuer:            iss,
		Subject:           sub,
		ObjectID:          oid,
		TenantID:          tid,
		PreferredUsername: preferredUsername,
		Name:              name,
		Email:             email,
		UPN:               upn,
	}, nil
}
