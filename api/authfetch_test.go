package api_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/internal/config"
	"github.com/tournamentfox/web/internal/errors"
	"github.com/tournamentfox/web/session"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

type backendCounts struct {
	refresh atomic.Int32
	user    atomic.Int32
}

// authBackend serves the refresh endpoint and one protected resource.
func authBackend(t *testing.T, counts *backendCounts, refreshOK bool, userStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		counts.refresh.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if !refreshOK {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"code":"INVALID_REFRESH_TOKEN"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":"fresh-access-token"}`))
	})
	mux.HandleFunc("GET /api/user", func(w http.ResponseWriter, r *http.Request) {
		counts.user.Add(1)
		require.Contains(t, r.Header.Get("Authorization"), "Bearer ")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userStatus)
		if userStatus == http.StatusOK {
			_, _ = w.Write([]byte(`{"success":true,"data":{"userId":"user-1","username":"fox"}}`))
		} else {
			_, _ = w.Write([]byte(`{"success":false,"code":"UNAUTHORIZED"}`))
		}
	})
	return httptest.NewServer(mux)
}

func newAuthClient(backendURL string) (*api.AuthClient, *session.Manager) {
	cookies := session.NewManager(config.Session{}, false)
	return api.NewAuthClient(api.NewClient(backendURL), cookies), cookies
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthClientFetch(t *testing.T) {
	t.Run("usable token goes straight through without refreshing", func(t *testing.T) {
		var counts backendCounts
		backend := authBackend(t, &counts, true, http.StatusOK)
		defer backend.Close()
		authClient, _ := newAuthClient(backend.URL)

		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: signedToken(t, time.Now().Add(10*time.Minute))})
		w := httptest.NewRecorder()

		resp, err := authClient.Fetch(w, r, "/api/user", api.AuthOptions{})
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, int32(0), counts.refresh.Load())
		require.Equal(t, int32(1), counts.user.Load())
	})

	t.Run("token expiring within the skew is refreshed first", func(t *testing.T) {
		var counts backendCounts
		backend := authBackend(t, &counts, true, http.StatusOK)
		defer backend.Close()
		authClient, _ := newAuthClient(backend.URL)

		// Expires in 10s; the 30s skew makes it count as expired.
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: signedToken(t, time.Now().Add(10*time.Second))})
		r.AddCookie(&http.Cookie{Name: session.RefreshTokenCookie, Value: "refresh-1"})
		w := httptest.NewRecorder()

		resp, err := authClient.Fetch(w, r, "/api/user", api.AuthOptions{})
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, int32(1), counts.refresh.Load())
		require.Equal(t, int32(1), counts.user.Load())

		refreshed := cookieByName(w.Result(), session.AccessTokenCookie)
		require.NotNil(t, refreshed)
		require.Equal(t, "fresh-access-token", refreshed.Value)
	})

	t.Run("no tokens at all redirects to login without touching the backend", func(t *testing.T) {
		var counts backendCounts
		backend := authBackend(t, &counts, true, http.StatusOK)
		defer backend.Close()
		authClient, _ := newAuthClient(backend.URL)

		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		w := httptest.NewRecorder()

		_, err := authClient.Fetch(w, r, "/api/user", api.AuthOptions{})
		require.ErrorIs(t, err, errors.ErrNoRefreshToken)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/login", w.Result().Header.Get("Location"))
		require.Equal(t, int32(0), counts.refresh.Load())
		require.Equal(t, int32(0), counts.user.Load())
	})

	t.Run("failed refresh clears the session and redirects", func(t *testing.T) {
		var counts backendCounts
		backend := authBackend(t, &counts, false, http.StatusOK)
		defer backend.Close()
		authClient, _ := newAuthClient(backend.URL)

		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: session.RefreshTokenCookie, Value: "stale-refresh"})
		w := httptest.NewRecorder()

		_, err := authClient.Fetch(w, r, "/api/user", api.AuthOptions{})
		require.ErrorIs(t, err, errors.ErrRefreshFailed)

		require.Equal(t, int32(1), counts.refresh.Load())
		require.Equal(t, int32(0), counts.user.Load())
		require.Equal(t, http.StatusSeeOther, w.Code)

		access := cookieByName(w.Result(), session.AccessTokenCookie)
		refresh := cookieByName(w.Result(), session.RefreshTokenCookie)
		require.NotNil(t, access)
		require.NotNil(t, refresh)
		require.Less(t, access.MaxAge, 0, "access token cookie must be deleted")
		require.Less(t, refresh.MaxAge, 0, "refresh token cookie must be deleted")
	})

	t.Run("backend 401 ends the session like a failed refresh", func(t *testing.T) {
		var counts backendCounts
		backend := authBackend(t, &counts, true, http.StatusUnauthorized)
		defer backend.Close()
		authClient, _ := newAuthClient(backend.URL)

		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: signedToken(t, time.Now().Add(10*time.Minute))})
		w := httptest.NewRecorder()

		_, err := authClient.Fetch(w, r, "/api/user", api.AuthOptions{})
		require.ErrorIs(t, err, errors.ErrUnauthorized)

		require.Equal(t, http.StatusSeeOther, w.Code)
		access := cookieByName(w.Result(), session.AccessTokenCookie)
		require.NotNil(t, access)
		require.Less(t, access.MaxAge, 0)
	})

	t.Run("SkipRedirect surfaces the error without writing a redirect", func(t *testing.T) {
		var counts backendCounts
		backend := authBackend(t, &counts, true, http.StatusOK)
		defer backend.Close()
		authClient, _ := newAuthClient(backend.URL)

		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		w := httptest.NewRecorder()

		_, err := authClient.Fetch(w, r, "/api/user", api.AuthOptions{SkipRedirect: true})
		require.ErrorIs(t, err, errors.ErrNoRefreshToken)
		require.Equal(t, http.StatusOK, w.Code, "no response may be committed")
	})
}

func TestFetchAuthData(t *testing.T) {
	var counts backendCounts
	backend := authBackend(t, &counts, true, http.StatusOK)
	defer backend.Close()
	authClient, _ := newAuthClient(backend.URL)

	type user struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: signedToken(t, time.Now().Add(10*time.Minute))})
	w := httptest.NewRecorder()

	result, err := api.FetchAuthData[user](authClient, w, r, "/api/user", api.AuthOptions{})
	require.NoError(t, err)
	require.True(t, result.Ok)
	require.Equal(t, "fox", result.Data.Username)
}
