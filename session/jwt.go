package session

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DecodeToken extracts the payload claims of a JWT without verifying its
// signature. The frontend never validates tokens itself; the backend is the
// authority. Decoding is only used to read exp and the user's scopes.
func DecodeToken(raw string) (jwtlib.MapClaims, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("[session DecodeToken] parse: %w", err)
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("[session DecodeToken] unexpected claims type")
	}
	return claims, nil
}

// IsTokenExpired reports whether the token's exp claim falls within skew of
// now. Tokens that cannot be decoded or carry no exp count as expired.
func IsTokenExpired(raw string, skew time.Duration) bool {
	claims, err := DecodeToken(raw)
	if err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Now().Add(skew).After(exp.Time)
}

// TokenScopes returns the scopes claim of an access token, or nil when the
// token has none.
func TokenScopes(raw string) []string {
	claims, err := DecodeToken(raw)
	if err != nil {
		return nil
	}
	rawScopes, ok := claims["scopes"].([]any)
	if !ok {
		return nil
	}
	scopes := make([]string, 0, len(rawScopes))
	for _, s := range rawScopes {
		if str, ok := s.(string); ok {
			scopes = append(scopes, str)
		}
	}
	return scopes
}

// HasScope checks whether the access token grants at least one of the
// required scopes.
func HasScope(raw string, required ...string) bool {
	scopes := TokenScopes(raw)
	for _, want := range required {
		for _, have := range scopes {
			if have == want {
				return true
			}
		}
	}
	return false
}
