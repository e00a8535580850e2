package session

import (
	"net/http"

	"github.com/tournamentfox/web/internal/config"
)

const (
	// AccessTokenCookie stores the short-lived backend access token.
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie stores the long-lived refresh token.
	RefreshTokenCookie = "refreshToken"
	// VerifierCookie caches the PKCE code verifier between the OAuth start
	// redirect and the provider callback.
	VerifierCookie = "pkce_verifier"
)

// Manager reads and writes the session cookies. Tokens are only ever
// handled server-side: every cookie it sets is HttpOnly with SameSite=Lax
// on path "/", so no token is visible to client-side script.
type Manager struct {
	cfg    config.SessionConfig
	secure bool
}

// NewManager creates a cookie manager. secure marks cookies Secure and
// should be true in any environment served over HTTPS.
func NewManager(cfg config.SessionConfig, secure bool) *Manager {
	return &Manager{cfg: cfg, secure: secure}
}

// SetSession stores both tokens, as done after login, registration and the
// OAuth bridge.
func (m *Manager) SetSession(w http.ResponseWriter, accessToken, refreshToken string) {
	m.SetAccessToken(w, accessToken)
	m.set(w, RefreshTokenCookie, refreshToken, int(m.cfg.GetRefreshTokenMaxAge().Seconds()))
}

func (m *Manager) SetAccessToken(w http.ResponseWriter, token string) {
	m.set(w, AccessTokenCookie, token, int(m.cfg.GetAccessTokenMaxAge().Seconds()))
}

func (m *Manager) SetVerifier(w http.ResponseWriter, verifier string) {
	m.set(w, VerifierCookie, verifier, int(m.cfg.GetVerifierMaxAge().Seconds()))
}

// ClearSession deletes both token cookies, used on logout and whenever a
// refresh fails.
func (m *Manager) ClearSession(w http.ResponseWriter) {
	m.delete(w, AccessTokenCookie)
	m.delete(w, RefreshTokenCookie)
}

func (m *Manager) DeleteVerifier(w http.ResponseWriter) {
	m.delete(w, VerifierCookie)
}

func (m *Manager) AccessToken(r *http.Request) string {
	return cookieValue(r, AccessTokenCookie)
}

func (m *Manager) RefreshToken(r *http.Request) string {
	return cookieValue(r, RefreshTokenCookie)
}

func (m *Manager) Verifier(r *http.Request) string {
	return cookieValue(r, VerifierCookie)
}

// IsAccessTokenUsable reports whether the request carries an access token
// that is not expired or about to expire within the configured skew.
func (m *Manager) IsAccessTokenUsable(r *http.Request) bool {
	token := m.AccessToken(r)
	return token != "" && !IsTokenExpired(token, m.cfg.GetTokenExpirySkew())
}

func (m *Manager) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (m *Manager) delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
