package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/tournamentfox/web/internal/config"
	"github.com/tournamentfox/web/session"
)

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestManagerSetSession(t *testing.T) {
	manager := session.NewManager(config.Session{}, false)
	w := httptest.NewRecorder()

	manager.SetSession(w, "access-1", "refresh-1")
	resp := w.Result()

	access := findCookie(resp, session.AccessTokenCookie)
	require.NotNil(t, access)
	require.Equal(t, "access-1", access.Value)
	require.Equal(t, int(config.Session{}.GetAccessTokenMaxAge().Seconds()), access.MaxAge)
	require.True(t, access.HttpOnly)
	require.Equal(t, "/", access.Path)
	require.Equal(t, http.SameSiteLaxMode, access.SameSite)
	require.False(t, access.Secure)

	refresh := findCookie(resp, session.RefreshTokenCookie)
	require.NotNil(t, refresh)
	require.Equal(t, "refresh-1", refresh.Value)
	require.Equal(t, int(config.Session{}.GetRefreshTokenMaxAge().Seconds()), refresh.MaxAge)
}

func TestManagerSecureFlag(t *testing.T) {
	manager := session.NewManager(config.Session{}, true)
	w := httptest.NewRecorder()

	manager.SetAccessToken(w, "access-1")
	access := findCookie(w.Result(), session.AccessTokenCookie)
	require.NotNil(t, access)
	require.True(t, access.Secure)
}

func TestManagerVerifierCookie(t *testing.T) {
	manager := session.NewManager(config.Session{}, false)
	w := httptest.NewRecorder()

	manager.SetVerifier(w, "verifier-abc")
	verifier := findCookie(w.Result(), session.VerifierCookie)
	require.NotNil(t, verifier)
	require.Equal(t, "verifier-abc", verifier.Value)
	require.Equal(t, int(config.Session{}.GetVerifierMaxAge().Seconds()), verifier.MaxAge)
	require.True(t, verifier.HttpOnly)

	w = httptest.NewRecorder()
	manager.DeleteVerifier(w)
	deleted := findCookie(w.Result(), session.VerifierCookie)
	require.NotNil(t, deleted)
	require.Less(t, deleted.MaxAge, 0)
}

func TestManagerClearSession(t *testing.T) {
	manager := session.NewManager(config.Session{}, false)
	w := httptest.NewRecorder()

	manager.ClearSession(w)
	resp := w.Result()

	for _, name := range []string{session.AccessTokenCookie, session.RefreshTokenCookie} {
		c := findCookie(resp, name)
		require.NotNil(t, c, name)
		require.Empty(t, c.Value)
		require.Less(t, c.MaxAge, 0)
	}
}

func TestManagerIsAccessTokenUsable(t *testing.T) {
	manager := session.NewManager(config.Session{}, false)

	withToken := func(value string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if value != "" {
			r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: value})
		}
		return r
	}

	t.Run("no cookie", func(t *testing.T) {
		require.False(t, manager.IsAccessTokenUsable(withToken("")))
	})

	t.Run("valid token", func(t *testing.T) {
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"exp": time.Now().Add(10 * time.Minute).Unix(),
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		require.True(t, manager.IsAccessTokenUsable(withToken(raw)))
	})

	t.Run("token inside the expiry skew", func(t *testing.T) {
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"exp": time.Now().Add(5 * time.Second).Unix(),
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		require.False(t, manager.IsAccessTokenUsable(withToken(raw)))
	})
}
