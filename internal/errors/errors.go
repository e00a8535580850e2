package errors

import (
	"errors"
	"fmt"
)

// Common error types for the web frontend
var (
	// Session lifecycle errors
	ErrNoRefreshToken = errors.New("no refresh token available")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrUnauthorized   = errors.New("unauthorized: token rejected by backend")

	// Login interruption. Returned by the authenticated fetch wrapper when a
	// redirect to the login page has been (or would have been) issued.
	ErrLoginRequired = errors.New("login required")

	// OAuth flow errors
	ErrMissingCode         = errors.New("missing authorization code")
	ErrMissingCodeVerifier = errors.New("missing code verifier")
	ErrTokenExchange       = errors.New("token exchange failed")
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
