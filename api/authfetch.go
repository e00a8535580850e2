package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	weberrors "github.com/tournamentfox/web/internal/errors"
	"github.com/tournamentfox/web/session"
)

const (
	refreshEndpoint = "/api/auth/refresh"
	loginPath       = "/login"
)

// AuthClient is the single call path for backend requests that require
// authentication. It owns every token lifecycle decision: reading the access
// token, refreshing it when it is missing or about to expire, clearing the
// session and sending the user back to the login page when recovery is not
// possible. Nothing else in the codebase touches the refresh endpoint.
type AuthClient struct {
	client  *Client
	cookies *session.Manager
}

func NewAuthClient(client *Client, cookies *session.Manager) *AuthClient {
	return &AuthClient{client: client, cookies: cookies}
}

// AuthOptions controls a single authenticated request.
type AuthOptions struct {
	Method string
	Query  url.Values
	Body   any

	// SkipRedirect suppresses the redirect to /login on auth failure; the
	// caller receives the error instead. Used where a redirect would be
	// wrong, e.g. probing whether a user is logged in.
	SkipRedirect bool
}

// Fetch performs an authenticated backend request. On auth failure it
// redirects to /login (unless suppressed) and returns a sentinel error from
// internal/errors wrapped in ErrLoginRequired semantics; in that case the
// response writer must be considered committed.
func (a *AuthClient) Fetch(w http.ResponseWriter, r *http.Request, endpoint string, opts AuthOptions) (*http.Response, error) {
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	accessToken := a.cookies.AccessToken(r)

	if !a.cookies.IsAccessTokenUsable(r) {
		refreshToken := a.cookies.RefreshToken(r)
		if refreshToken == "" {
			log.Debug().Str("endpoint", endpoint).Msg("auth: no refresh token, login required")
			a.fail(w, r, opts.SkipRedirect)
			return nil, weberrors.ErrNoRefreshToken
		}

		newToken, ok := a.refresh(r.Context(), refreshToken)
		if !ok {
			log.Debug().Str("endpoint", endpoint).Msg("auth: refresh failed, clearing session")
			a.cookies.ClearSession(w)
			a.fail(w, r, opts.SkipRedirect)
			return nil, weberrors.ErrRefreshFailed
		}

		accessToken = newToken
		a.cookies.SetAccessToken(w, newToken)
	}

	resp, err := a.client.Do(r.Context(), opts.Method, endpoint, opts.Query, opts.Body, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return nil, weberrors.Wrapf(err, "[AuthClient Fetch] %s %s", opts.Method, endpoint)
	}

	// A 401 despite a token that looked valid means the backend revoked or
	// rejected it. Same terminal handling as a failed refresh.
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		log.Debug().Str("endpoint", endpoint).Msg("auth: backend rejected token (401)")
		a.cookies.ClearSession(w)
		a.fail(w, r, opts.SkipRedirect)
		return nil, weberrors.ErrUnauthorized
	}

	return resp, nil
}

// refresh exchanges the refresh token for a new access token. The refresh
// endpoint returns the bare access token string in the envelope's data.
func (a *AuthClient) refresh(ctx context.Context, refreshToken string) (string, bool) {
	result := FetchData[string](ctx, a.client, http.MethodPost, refreshEndpoint, nil, map[string]string{
		"refreshToken": refreshToken,
	})
	if !result.Ok || result.Data == "" {
		return "", false
	}
	return result.Data, true
}

func (a *AuthClient) fail(w http.ResponseWriter, r *http.Request, skipRedirect bool) {
	if skipRedirect {
		return
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// FetchAuthData is the envelope-decoding variant of AuthClient.Fetch. Auth
// failures surface as a Result with ErrLoginRequired's code after the
// redirect has been issued; transport failures collapse as in FetchData.
func FetchAuthData[T any](a *AuthClient, w http.ResponseWriter, r *http.Request, endpoint string, opts AuthOptions) (Result[T], error) {
	resp, err := a.Fetch(w, r, endpoint, opts)
	if err != nil {
		return Err[T](CodeFetchError), err
	}
	defer resp.Body.Close()
	return DecodeResponse[T](endpoint, resp), nil
}
