package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	weberrors "github.com/tournamentfox/web/internal/errors"
)

// OAuth callback error codes surfaced to the login page.
const (
	oauthErrMissingCode            = "missing_code"
	oauthErrMissingCodeVerifier    = "missing_code_verifier"
	oauthErrTokenExchangeFailed    = "token_exchange_failed"
	oauthErrBackendAuthFailed      = "backend_auth_failed"
	oauthErrInvalidBackendResponse = "invalid_backend_response"
)

// GoogleLoginHandler starts the Google sign-in flow: it drops the PKCE
// verifier cookie and forwards the browser to Google's consent screen.
func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.google.Begin(w, r)
	}
}

// GoogleCallbackHandler finishes the Google sign-in flow. Every failure
// lands on the login page with a stable error code; cookies are only
// written once the backend has accepted the Google identity.
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			log.Warn().Err(weberrors.ErrMissingCode).Msg("google callback rejected")
			s.redirectLoginError(w, r, oauthErrMissingCode)
			return
		}

		verifier := s.cookies.Verifier(r)
		if verifier == "" {
			log.Warn().Err(weberrors.ErrMissingCodeVerifier).Msg("google callback rejected")
			s.redirectLoginError(w, r, oauthErrMissingCodeVerifier)
			return
		}

		token, err := s.google.Exchange(r.Context(), code, verifier)
		if err != nil {
			log.Warn().Err(err).Msg("google code exchange failed")
			s.redirectLoginError(w, r, oauthErrTokenExchangeFailed)
			return
		}
		if err := s.google.VerifyIDToken(r.Context(), token); err != nil {
			log.Warn().Err(err).Msg("google id token rejected")
			s.redirectLoginError(w, r, oauthErrTokenExchangeFailed)
			return
		}

		result := s.google.BridgeLogin(r.Context(), token.AccessToken)
		if !result.Ok {
			log.Warn().Str("code", result.Code).Msg("backend rejected google sign-in")
			s.redirectLoginError(w, r, oauthErrBackendAuthFailed)
			return
		}
		if result.Data.AccessToken == "" || result.Data.RefreshToken == "" {
			s.redirectLoginError(w, r, oauthErrInvalidBackendResponse)
			return
		}

		s.cookies.SetSession(w, result.Data.AccessToken, result.Data.RefreshToken)
		s.cookies.DeleteVerifier(w)
		http.Redirect(w, r, s.config.GetFrontendURL()+RouteDashboard, http.StatusSeeOther)
	}
}

func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, code string) {
	s.cookies.DeleteVerifier(w)
	http.Redirect(w, r, s.config.GetFrontendURL()+RouteLogin+"?error="+code, http.StatusSeeOther)
}
