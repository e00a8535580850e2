package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/auth"
)

func codeFor(t *testing.T, errors []api.ErrorData, field string) string {
	t.Helper()
	for _, e := range errors {
		if e.Field == field {
			return e.Code
		}
	}
	t.Fatalf("no error reported for field %q: %v", field, errors)
	return ""
}

func validRegister() auth.RegisterInput {
	return auth.RegisterInput{
		Email:           "fox@example.com",
		Username:        "tournament_fox",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	}
}

func TestValidatorRegisterInput(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid input produces no errors", func(t *testing.T) {
		require.Nil(t, v.Check(validRegister()))
	})

	t.Run("email", func(t *testing.T) {
		input := validRegister()
		input.Email = "not-an-email"
		require.Equal(t, "emailInvalid", codeFor(t, v.Check(input), "email"))

		input.Email = strings.Repeat("a", 250) + "@example.com"
		require.Equal(t, "emailMaxLength", codeFor(t, v.Check(input), "email"))
	})

	t.Run("username", func(t *testing.T) {
		input := validRegister()
		input.Username = "ab"
		require.Equal(t, "usernameMinLength", codeFor(t, v.Check(input), "username"))

		input.Username = strings.Repeat("x", 51)
		require.Equal(t, "usernameMaxLength", codeFor(t, v.Check(input), "username"))

		input.Username = "bad name!"
		require.Equal(t, "usernameRegex", codeFor(t, v.Check(input), "username"))
	})

	t.Run("password policy, first violated rule wins", func(t *testing.T) {
		cases := []struct {
			password string
			code     string
		}{
			{"Ab1!xyz", "passwordMinLength"},
			{"lowercase1!", "passwordUppercase"},
			{"UPPERCASE1!", "passwordLowercase"},
			{"NoNumbers!!", "passwordNumber"},
			{"NoSpecial11", "passwordSpecial"},
		}
		for _, tc := range cases {
			input := validRegister()
			input.Password = tc.password
			input.ConfirmPassword = tc.password
			require.Equal(t, tc.code, codeFor(t, v.Check(input), "password"), tc.password)
		}
	})

	t.Run("password confirmation", func(t *testing.T) {
		input := validRegister()
		input.ConfirmPassword = "Different1!"
		require.Equal(t, "passwordsDoNotMatch", codeFor(t, v.Check(input), "confirmPassword"))
	})
}

func TestValidatorVerifyInput(t *testing.T) {
	v := auth.NewValidator()

	require.Nil(t, v.Check(auth.VerifyInput{Code: "123456"}))
	require.Equal(t, "codeLength", codeFor(t, v.Check(auth.VerifyInput{Code: "123"}), "code"))
	require.Equal(t, "codeLength", codeFor(t, v.Check(auth.VerifyInput{}), "code"))
}

func TestValidatorLoginInput(t *testing.T) {
	v := auth.NewValidator()

	require.Nil(t, v.Check(auth.LoginInput{UsernameOrEmail: "fox", Password: "Str0ng!pass"}))
	require.Equal(t, "usernameOrEmailRequired",
		codeFor(t, v.Check(auth.LoginInput{Password: "Str0ng!pass"}), "usernameOrEmail"))
}

func TestValidatorResetPasswordInput(t *testing.T) {
	v := auth.NewValidator()

	require.Nil(t, v.Check(auth.ResetPasswordInput{Token: "tok", NewPassword: "Str0ng!pass"}))
	require.Equal(t, "tokenInvalid",
		codeFor(t, v.Check(auth.ResetPasswordInput{NewPassword: "Str0ng!pass"}), "token"))
	require.Equal(t, "passwordUppercase",
		codeFor(t, v.Check(auth.ResetPasswordInput{Token: "tok", NewPassword: "weakpass1!"}), "newPassword"))
}
