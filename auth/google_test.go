package auth_test

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tournamentfox/web/auth"
	"github.com/tournamentfox/web/internal/config"
	"github.com/tournamentfox/web/session"
	"golang.org/x/oauth2"
)

func TestGenerateCodeVerifier(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		verifier := auth.GenerateCodeVerifier()
		require.False(t, seen[verifier], "verifier must not repeat")
		seen[verifier] = true

		// 32 random bytes base64url-encoded without padding.
		require.Len(t, verifier, 43)
		require.NotContains(t, verifier, "=")
		require.NotContains(t, verifier, "+")
		require.NotContains(t, verifier, "/")
	}
}

func TestGenerateCodeChallenge(t *testing.T) {
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	challenge := auth.GenerateCodeChallenge(verifier)

	hash := sha256.Sum256([]byte(verifier))
	require.Equal(t, base64.RawURLEncoding.EncodeToString(hash[:]), challenge)
	require.Equal(t, challenge, auth.GenerateCodeChallenge(verifier), "challenge is deterministic")
	require.NotContains(t, challenge, "=")
}

func newGoogleFlow(t *testing.T) (*auth.GoogleFlow, *session.Manager) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret-123")
	t.Setenv("GOOGLE_REDIRECT_URI", "http://localhost:3000/auth/google/callback")

	cookies := session.NewManager(config.Session{}, false)
	return auth.NewGoogleFlow(config.New(), nil, cookies), cookies
}

func TestGoogleFlowBegin(t *testing.T) {
	flow, cookies := newGoogleFlow(t)

	r := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w := httptest.NewRecorder()
	flow.Begin(w, r)

	require.Equal(t, http.StatusFound, w.Code)

	var verifier string
	for _, c := range w.Result().Cookies() {
		if c.Name == session.VerifierCookie {
			verifier = c.Value
			require.True(t, c.HttpOnly)
			require.Equal(t, int(config.Session{}.GetVerifierMaxAge().Seconds()), c.MaxAge)
		}
	}
	require.NotEmpty(t, verifier, "PKCE verifier cookie must be set")

	location, err := url.Parse(w.Result().Header.Get("Location"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(location.String(), "https://accounts.google.com/o/oauth2/v2/auth"))

	query := location.Query()
	require.Equal(t, "client-123", query.Get("client_id"))
	require.Equal(t, "code", query.Get("response_type"))
	require.Equal(t, "openid email profile", query.Get("scope"))
	require.Equal(t, "offline", query.Get("access_type"))
	require.Equal(t, "consent", query.Get("prompt"))
	require.Equal(t, "S256", query.Get("code_challenge_method"))
	require.Equal(t, auth.GenerateCodeChallenge(verifier), query.Get("code_challenge"),
		"challenge in the redirect must derive from the cookie verifier")

	// The verifier is readable back from the request on the callback leg.
	callback := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	callback.AddCookie(&http.Cookie{Name: session.VerifierCookie, Value: verifier})
	require.Equal(t, verifier, cookies.Verifier(callback))
}

func TestGoogleFlowExchange(t *testing.T) {
	t.Run("sends code and verifier to the token endpoint", func(t *testing.T) {
		var form url.Values
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			form = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`))
		}))
		defer tokenServer.Close()

		flow, _ := newGoogleFlow(t)
		flow.WithOAuthEndpoint(oauth2.Endpoint{AuthURL: tokenServer.URL + "/auth", TokenURL: tokenServer.URL + "/token"})

		token, err := flow.Exchange(t.Context(), "auth-code", "the-verifier")
		require.NoError(t, err)
		require.Equal(t, "provider-token", token.AccessToken)
		require.Equal(t, "auth-code", form.Get("code"))
		require.Equal(t, "the-verifier", form.Get("code_verifier"))
		require.Equal(t, "authorization_code", form.Get("grant_type"))
	})

	t.Run("empty access token is an exchange failure", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"","token_type":"Bearer"}`))
		}))
		defer tokenServer.Close()

		flow, _ := newGoogleFlow(t)
		flow.WithOAuthEndpoint(oauth2.Endpoint{AuthURL: tokenServer.URL + "/auth", TokenURL: tokenServer.URL + "/token"})

		_, err := flow.Exchange(t.Context(), "auth-code", "the-verifier")
		require.Error(t, err)
	})
}
