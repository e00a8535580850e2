package auth

import (
	"context"
	"net/http"

	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/internal/errors"
	"github.com/tournamentfox/web/session"
)

// Backend auth endpoints.
const (
	registerEndpoint             = "/api/auth/register"
	loginEndpoint                = "/api/auth/login"
	verifyCodeEndpoint           = "/api/auth/verify-code"
	resendVerificationEndpoint   = "/api/auth/resend-verification-email"
	requestPasswordResetEndpoint = "/api/auth/request-password-reset"
	resetPasswordEndpoint        = "/api/auth/reset-password"
	currentUserEndpoint          = "/api/user"
)

type UserDTO struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is the backend's payload for any operation that establishes a
// session: both tokens plus the user record.
type AuthResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         UserDTO `json:"user"`
}

// Result is the outcome of an auth operation, surfaced to UI code as data.
// Code and Errors carry translatable identifiers; nothing here is thrown.
type Result struct {
	Ok     bool
	Code   string
	Errors []api.ErrorData
	User   *UserDTO
}

func failure(code string, errors []api.ErrorData) Result {
	return Result{Ok: false, Code: code, Errors: errors}
}

// Service performs credential-based authentication against the backend and
// manages the resulting cookie session.
type Service struct {
	api       *api.Client
	authAPI   *api.AuthClient
	cookies   *session.Manager
	validator *Validator
}

func NewService(apiClient *api.Client, authAPI *api.AuthClient, cookies *session.Manager) *Service {
	return &Service{
		api:       apiClient,
		authAPI:   authAPI,
		cookies:   cookies,
		validator: NewValidator(),
	}
}

// Register validates the input, creates the account and stores both tokens
// as HttpOnly cookies. No cookie is touched unless the backend reports
// success.
func (s *Service) Register(ctx context.Context, w http.ResponseWriter, input RegisterInput) Result {
	if errs := s.validator.Check(input); errs != nil {
		return failure(api.CodeValidationError, errs)
	}

	result := api.FetchData[AuthResponse](ctx, s.api, http.MethodPost, registerEndpoint, nil, map[string]string{
		"email":    input.Email,
		"username": input.Username,
		"password": input.Password,
	})
	return s.establishSession(w, result)
}

// Login authenticates with username-or-email plus password. The password
// policy is checked locally first so malformed credentials never reach the
// backend.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, input LoginInput) Result {
	if errs := s.validator.Check(input); errs != nil {
		return failure(api.CodeValidationError, errs)
	}

	result := api.FetchData[AuthResponse](ctx, s.api, http.MethodPost, loginEndpoint, nil, map[string]string{
		"usernameOrEmail": input.UsernameOrEmail,
		"password":        input.Password,
	})
	return s.establishSession(w, result)
}

func (s *Service) establishSession(w http.ResponseWriter, result api.Result[AuthResponse]) Result {
	if !result.Ok {
		return failure(result.Code, result.Errors)
	}
	if result.Data.AccessToken == "" || result.Data.RefreshToken == "" {
		return failure(api.CodeFetchError, nil)
	}

	s.cookies.SetSession(w, result.Data.AccessToken, result.Data.RefreshToken)
	user := result.Data.User
	return Result{Ok: true, User: &user}
}

// VerifyCode submits a 6-character email verification code. Verification
// has no cookie side effect.
func (s *Service) VerifyCode(ctx context.Context, code string) Result {
	if errs := s.validator.Check(VerifyInput{Code: code}); errs != nil {
		return failure(api.CodeValidationError, errs)
	}

	result := api.FetchData[struct{}](ctx, s.api, http.MethodPost, verifyCodeEndpoint, nil, map[string]string{
		"code": code,
	})
	if !result.Ok {
		return failure(result.Code, result.Errors)
	}
	return Result{Ok: true}
}

func (s *Service) ResendVerificationEmail(ctx context.Context, email string) Result {
	return s.postEmail(ctx, resendVerificationEndpoint, email)
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) Result {
	return s.postEmail(ctx, requestPasswordResetEndpoint, email)
}

func (s *Service) postEmail(ctx context.Context, endpoint, email string) Result {
	if errs := s.validator.Check(EmailInput{Email: email}); errs != nil {
		return failure(api.CodeValidationError, errs)
	}

	result := api.FetchData[struct{}](ctx, s.api, http.MethodPost, endpoint, nil, map[string]string{
		"email": email,
	})
	if !result.Ok {
		return failure(result.Code, result.Errors)
	}
	return Result{Ok: true}
}

// ResetPassword changes the credential behind a reset token. It does not log
// the user in, so no cookies are written.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) Result {
	if errs := s.validator.Check(ResetPasswordInput{Token: token, NewPassword: newPassword}); errs != nil {
		return failure(api.CodeValidationError, errs)
	}

	result := api.FetchData[struct{}](ctx, s.api, http.MethodPost, resetPasswordEndpoint, nil, map[string]string{
		"token":       token,
		"newPassword": newPassword,
	})
	if !result.Ok {
		return failure(result.Code, result.Errors)
	}
	return Result{Ok: true}
}

// Logout deletes both token cookies. The backend holds no frontend session
// state, so nothing else is required.
func (s *Service) Logout(w http.ResponseWriter) {
	s.cookies.ClearSession(w)
}

// CurrentUser fetches the logged-in user's record. Redirect is suppressed:
// an anonymous visitor is an expected outcome here, not a navigation event.
func (s *Service) CurrentUser(w http.ResponseWriter, r *http.Request) (*UserDTO, error) {
	result, err := api.FetchAuthData[UserDTO](s.authAPI, w, r, currentUserEndpoint, api.AuthOptions{
		SkipRedirect: true,
	})
	if err != nil {
		return nil, err
	}
	if !result.Ok {
		return nil, nil
	}
	user := result.Data
	return &user, nil
}

// RequireUser fetches the logged-in user's record for pages that need a
// session. Any failure ends with a redirect to the login page and a non-nil
// error; the caller only has to stop rendering.
func (s *Service) RequireUser(w http.ResponseWriter, r *http.Request) (*UserDTO, error) {
	result, err := api.FetchAuthData[UserDTO](s.authAPI, w, r, currentUserEndpoint, api.AuthOptions{})
	if err != nil {
		return nil, err
	}
	if !result.Ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, errors.Wrapf(errors.ErrLoginRequired, "[auth RequireUser] backend code %s", result.Code)
	}
	user := result.Data
	return &user, nil
}

// HasPermission reports whether the request's access token carries at least
// one of the required scopes.
func (s *Service) HasPermission(r *http.Request, required ...string) bool {
	token := s.cookies.AccessToken(r)
	if token == "" {
		return false
	}
	return session.HasScope(token, required...)
}
