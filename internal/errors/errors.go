package errors

import (
	"errors"
	"fmt"
)

// Common error types for the identity client
var (
	// Request construction errors
	ErrMissingTokenEndpoint = errors.New("token endpoint is not specified")
	ErrMissingGrant         = errors.New("grant is required")

	// Token artifact errors
	ErrMissingAccessToken  = errors.New("token response missing access_token")
	ErrMalformedIDToken    = errors.New("malformed id token")
	ErrMalformedClientInfo = errors.New("malformed client info")

	// Credential errors
	ErrMissingClientID    = errors.New("client id is required")
	ErrMissingCertificate = errors.New("certificate key material is required")

	// Authority errors
	ErrMissingAuthorityHost = errors.New("authority host is required")
	ErrMissingPolicy        = errors.New("policy is required for a policy-partitioned authority")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
