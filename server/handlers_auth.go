package server

import (
	"net/http"
	"net/url"

	"github.com/tournamentfox/web/auth"
)

// authPageData is the template model for the auth form pages.
type authPageData struct {
	basePage
	Fields      map[string]string
	FieldErrors map[string]string
	Sent        bool
	Verified    bool
	Done        bool
	Token       string
	Email       string
}

func (s *Server) authPage(w http.ResponseWriter, r *http.Request, path string) authPageData {
	return authPageData{
		basePage:    s.pageBase(w, r, path),
		Fields:      map[string]string{},
		FieldErrors: map[string]string{},
	}
}

// applyResult copies a failed operation's error codes onto the page model,
// translated for display.
func (d *authPageData) applyResult(result auth.Result) {
	if result.Ok {
		return
	}
	for _, fieldError := range result.Errors {
		d.FieldErrors[fieldError.Field] = d.T(fieldError.Code)
	}
	if len(d.FieldErrors) == 0 && result.Code != "" {
		d.Error = d.T(result.Code)
	}
}

func (d *authPageData) echo(r *http.Request, fields ...string) {
	for _, field := range fields {
		d.Fields[field] = r.PostFormValue(field)
	}
}

func (s *Server) renderHTML(w http.ResponseWriter, exec func() error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = exec()
}

// LoginPageHandler renders the login page. OAuth callback failures arrive
// here as an error query parameter and are shown translated.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.authPage(w, r, RouteLogin)
		if code := r.URL.Query().Get("error"); code != "" {
			data.Error = data.T("oauth." + code)
		}
		data.Verified = r.URL.Query().Get("verified") != ""
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// LoginSubmissionHandler signs the user in with backend credentials.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		input := auth.LoginInput{
			UsernameOrEmail: r.PostFormValue("usernameOrEmail"),
			Password:        r.PostFormValue("password"),
		}

		result := s.auth.Login(r.Context(), w, input)
		if result.Ok {
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
			return
		}

		data := s.authPage(w, r, RouteLogin)
		data.echo(r, "usernameOrEmail")
		data.applyResult(result)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// RegisterPageHandler renders the registration page.
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		panic("Failed to parse register template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.authPage(w, r, RouteRegister)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// RegisterSubmissionHandler creates the account and moves on to email
// verification.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		panic("Failed to parse register template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		input := auth.RegisterInput{
			Email:           r.PostFormValue("email"),
			Username:        r.PostFormValue("username"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}

		result := s.auth.Register(r.Context(), w, input)
		if result.Ok {
			http.Redirect(w, r, RouteVerify+"?email="+url.QueryEscape(input.Email), http.StatusSeeOther)
			return
		}

		data := s.authPage(w, r, RouteRegister)
		data.echo(r, "email", "username")
		data.applyResult(result)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// VerifyPageHandler renders the email verification page, prefilled when the
// emailed link carries the code.
func (s *Server) VerifyPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("verify.html")
	if err != nil {
		panic("Failed to parse verify template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.authPage(w, r, RouteVerify)
		data.Fields["code"] = r.URL.Query().Get("code")
		data.Email = r.URL.Query().Get("email")
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// VerifySubmissionHandler confirms the emailed verification code.
func (s *Server) VerifySubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("verify.html")
	if err != nil {
		panic("Failed to parse verify template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		result := s.auth.VerifyCode(r.Context(), r.PostFormValue("code"))
		if result.Ok {
			http.Redirect(w, r, RouteLogin+"?verified=1", http.StatusSeeOther)
			return
		}

		data := s.authPage(w, r, RouteVerify)
		data.Email = r.PostFormValue("email")
		data.applyResult(result)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// ResendVerificationHandler sends a fresh verification code.
func (s *Server) ResendVerificationHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("verify.html")
	if err != nil {
		panic("Failed to parse verify template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		email := r.PostFormValue("email")
		result := s.auth.ResendVerificationEmail(r.Context(), email)

		data := s.authPage(w, r, RouteVerify)
		data.Email = email
		data.Sent = result.Ok
		data.applyResult(result)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// ForgotPasswordPageHandler renders the forgot-password page.
func (s *Server) ForgotPasswordPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.authPage(w, r, RouteForgotPassword)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// ForgotPasswordSubmissionHandler requests a password reset email. The page
// reports success without confirming whether the address exists.
func (s *Server) ForgotPasswordSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		email := r.PostFormValue("email")
		result := s.auth.RequestPasswordReset(r.Context(), email)

		data := s.authPage(w, r, RouteForgotPassword)
		data.echo(r, "email")
		data.Sent = result.Ok
		data.applyResult(result)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// ResetPasswordPageHandler renders the reset form reached from the emailed
// link.
func (s *Server) ResetPasswordPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("reset_password.html")
	if err != nil {
		panic("Failed to parse reset password template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.authPage(w, r, RouteResetPassword)
		data.Token = r.URL.Query().Get("token")
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// ResetPasswordSubmissionHandler sets the new password using the emailed
// token.
func (s *Server) ResetPasswordSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("reset_password.html")
	if err != nil {
		panic("Failed to parse reset password template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		token := r.PostFormValue("token")
		newPassword := r.PostFormValue("newPassword")
		confirm := r.PostFormValue("confirmNewPassword")

		data := s.authPage(w, r, RouteResetPassword)
		data.Token = token

		if newPassword != confirm {
			data.FieldErrors["confirmNewPassword"] = data.T("passwordsDoNotMatch")
			s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
			return
		}

		result := s.auth.ResetPassword(r.Context(), token, newPassword)
		if result.Ok {
			data.Done = true
		}
		data.applyResult(result)
		s.renderHTML(w, func() error { return tmpl.Execute(w, data) })
	}
}

// LogoutHandler clears the token cookies and returns to the home page.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.auth.Logout(w)
		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}
