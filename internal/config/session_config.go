package config

import "time"

type SessionConfig interface {
	GetAccessTokenMaxAge() time.Duration
	GetRefreshTokenMaxAge() time.Duration
	GetVerifierMaxAge() time.Duration
	GetTokenExpirySkew() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetAccessTokenMaxAge() time.Duration {
	return 15 * time.Minute
}

func (Session) GetRefreshTokenMaxAge() time.Duration {
	return 7 * 24 * time.Hour // 7 days
}

// GetVerifierMaxAge bounds the window between starting the OAuth flow and
// the provider callback consuming the PKCE verifier.
func (Session) GetVerifierMaxAge() time.Duration {
	return 5 * time.Minute
}

// GetTokenExpirySkew is how close to its exp claim an access token is
// treated as already expired, so it is refreshed before the backend would
// reject it mid-request.
func (Session) GetTokenExpirySkew() time.Duration {
	return 30 * time.Second
}
