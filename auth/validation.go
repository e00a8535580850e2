package auth

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/tournamentfox/web/api"
)

// Form input shapes. Tags are evaluated in order, so the first violated rule
// determines the reported error code for a field.

type RegisterInput struct {
	Email           string `validate:"required,email,max=255"`
	Username        string `validate:"required,min=3,max=50,username_charset"`
	Password        string `validate:"required,min=8,pw_upper,pw_lower,pw_number,pw_special"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

type LoginInput struct {
	UsernameOrEmail string `validate:"required"`
	Password        string `validate:"required,min=8,pw_upper,pw_lower,pw_number,pw_special"`
}

type VerifyInput struct {
	Code string `validate:"required,len=6"`
}

type EmailInput struct {
	Email string `validate:"required,email,max=255"`
}

type ResetPasswordInput struct {
	Token       string `validate:"required"`
	NewPassword string `validate:"required,min=8,pw_upper,pw_lower,pw_number,pw_special"`
}

// fieldCodes maps "StructField.tag" to the translatable error code shown to
// the user. The codes mirror the backend's field error vocabulary so the UI
// renders both through the same message table.
var fieldCodes = map[string]string{
	"Email.required": "emailInvalid",
	"Email.email":    "emailInvalid",
	"Email.max":      "emailMaxLength",

	"Username.required":         "usernameMinLength",
	"Username.min":              "usernameMinLength",
	"Username.max":              "usernameMaxLength",
	"Username.username_charset": "usernameRegex",

	"Password.required":   "passwordMinLength",
	"Password.min":        "passwordMinLength",
	"Password.pw_upper":   "passwordUppercase",
	"Password.pw_lower":   "passwordLowercase",
	"Password.pw_number":  "passwordNumber",
	"Password.pw_special": "passwordSpecial",

	"NewPassword.required":   "passwordMinLength",
	"NewPassword.min":        "passwordMinLength",
	"NewPassword.pw_upper":   "passwordUppercase",
	"NewPassword.pw_lower":   "passwordLowercase",
	"NewPassword.pw_number":  "passwordNumber",
	"NewPassword.pw_special": "passwordSpecial",

	"ConfirmPassword.eqfield": "passwordsDoNotMatch",

	"Code.required": "codeLength",
	"Code.len":      "codeLength",

	"UsernameOrEmail.required": "usernameOrEmailRequired",

	"Token.required": "tokenInvalid",
}

// fieldNames maps struct fields to the field identifiers used in error
// payloads and form markup.
var fieldNames = map[string]string{
	"Email":           "email",
	"Username":        "username",
	"Password":        "password",
	"ConfirmPassword": "confirmPassword",
	"Code":            "code",
	"UsernameOrEmail": "usernameOrEmail",
	"Token":           "token",
	"NewPassword":     "newPassword",
}

var usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validator checks form input against the registration schemas before any
// request leaves the server. Validation failures never reach the network.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	mustRegister(v, "username_charset", func(fl validator.FieldLevel) bool {
		return usernameCharset.MatchString(fl.Field().String())
	})
	mustRegister(v, "pw_upper", containsClass(unicode.IsUpper))
	mustRegister(v, "pw_lower", containsClass(unicode.IsLower))
	mustRegister(v, "pw_number", containsClass(unicode.IsDigit))
	mustRegister(v, "pw_special", containsClass(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("register validation " + tag + ": " + err.Error())
	}
}

func containsClass(match func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if match(r) {
				return true
			}
		}
		return false
	}
}

// Check validates an input struct and returns per-field error codes, or nil
// when the input is valid.
func (v *Validator) Check(input any) []api.ErrorData {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []api.ErrorData{{Field: "", Code: api.CodeValidationError}}
	}

	errors := make([]api.ErrorData, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		code, ok := fieldCodes[field+"."+fieldError.Tag()]
		if !ok {
			code = api.CodeValidationError
		}
		name, ok := fieldNames[field]
		if !ok {
			name = field
		}
		errors = append(errors, api.ErrorData{Field: name, Code: code})
	}
	return errors
}
