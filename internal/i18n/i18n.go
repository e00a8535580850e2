// Package i18n resolves the request language and translates UI strings and
// error codes. The full translation catalog is maintained elsewhere; this
// table covers the strings the frontend itself renders.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam selects a language explicitly via the query string.
	LangParam = "lang"
	// LangCookie stores the visitor's language preference.
	LangCookie = "lang"
)

var supported = []language.Tag{
	language.English, // default
	language.German,
}

var matcher = language.NewMatcher(supported)

// Supported returns the tags the frontend can render.
func Supported() []language.Tag {
	return supported
}

// Default returns the fallback language tag.
func Default() language.Tag {
	return language.English
}

// Resolve determines the language for a request: explicit lang query
// parameter, then the preference cookie, then Accept-Language, then the
// default. The bool reports whether the choice came from the query
// parameter and should be persisted as a cookie.
func Resolve(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if raw := strings.TrimSpace(r.URL.Query().Get(LangParam)); raw != "" {
		if tag, ok := match(raw); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookie); err == nil {
		if tag, ok := match(cookie.Value); ok {
			return tag, false
		}
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence > language.No {
				return supported[index], false
			}
		}
	}

	return Default(), false
}

func match(raw string) (language.Tag, bool) {
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Tag{}, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Tag{}, false
	}
	return supported[index], true
}

// T translates a message key for the given tag, falling back to English and
// finally to the key itself so missing entries stay visible.
func T(tag language.Tag, key string) string {
	if msgs, ok := catalog[tag]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[language.English][key]; ok {
		return msg
	}
	return key
}

var catalog = map[language.Tag]map[string]string{
	language.English: {
		"nav.games":    "Games",
		"nav.matches":  "Matches",
		"nav.teams":    "Teams",
		"nav.login":    "Log in",
		"nav.logout":   "Log out",
		"nav.register": "Sign up",

		"home.tagline": "Esports tournaments, matches and teams.",
		"home.cta":     "Browse matches",

		"dashboard.title":     "Dashboard",
		"dashboard.welcome":   "Welcome back",
		"dashboard.moderator": "Moderator tools are enabled for this account.",

		"form.submitting": "Please wait...",

		"label.email":           "Email",
		"label.username":        "Username",
		"label.usernameOrEmail": "Username or email",
		"label.password":        "Password",
		"label.confirmPassword": "Confirm password",
		"label.newPassword":     "New password",
		"label.code":            "Verification code",
		"label.search":          "Search",

		"auth.google":      "Continue with Google",
		"auth.noAccount":   "No account yet?",
		"auth.haveAccount": "Already have an account?",
		"auth.forgotLink":  "Forgot your password?",
		"auth.resend":      "Resend code",
		"auth.verified":    "Email verified. You can log in now.",
		"auth.emailSent":   "If the address exists, an email is on its way.",
		"auth.codeSent":    "A new code is on its way.",
		"auth.resetDone":   "Password changed. You can log in now.",
		"auth.backToLogin": "Back to login",

		"filter.apply": "Apply",
		"filter.reset": "Reset",

		"list.loading":   "Loading more...",
		"list.noResults": "Nothing here yet.",
		"list.end":       "That's all of them.",
		"list.error":     "Something went wrong loading this list.",

		"auth.login":          "Log in",
		"auth.register":       "Create account",
		"auth.verify":         "Verify your email",
		"auth.forgotPassword": "Forgot password",
		"auth.resetPassword":  "Choose a new password",

		"emailInvalid":        "Enter a valid email address.",
		"emailMaxLength":      "Email address is too long.",
		"usernameMinLength":   "Username must be at least 3 characters.",
		"usernameMaxLength":   "Username must be at most 50 characters.",
		"usernameRegex":       "Username may only contain letters, numbers, - and _.",
		"passwordMinLength":   "Password must be at least 8 characters.",
		"passwordUppercase":   "Password needs an uppercase letter.",
		"passwordLowercase":   "Password needs a lowercase letter.",
		"passwordNumber":      "Password needs a number.",
		"passwordSpecial":     "Password needs a special character.",
		"passwordsDoNotMatch": "Passwords do not match.",
		"codeLength":          "The verification code has 6 characters.",
		"tokenInvalid":        "This reset link is no longer valid.",

		"usernameOrEmailRequired": "Enter your username or email.",

		"FETCH_ERROR":      "We couldn't reach the server. Please try again.",
		"VALIDATION_ERROR": "Please check the highlighted fields.",

		"oauth.missing_code":             "Google login was cancelled.",
		"oauth.missing_code_verifier":    "The login attempt expired. Please try again.",
		"oauth.token_exchange_failed":    "Google login failed. Please try again.",
		"oauth.backend_auth_failed":      "We couldn't sign you in with Google.",
		"oauth.invalid_backend_response": "We couldn't sign you in with Google.",
	},
	language.German: {
		"nav.games":    "Spiele",
		"nav.matches":  "Matches",
		"nav.teams":    "Teams",
		"nav.login":    "Anmelden",
		"nav.logout":   "Abmelden",
		"nav.register": "Registrieren",

		"home.tagline": "Esport-Turniere, Matches und Teams.",
		"home.cta":     "Zu den Matches",

		"dashboard.title":     "Dashboard",
		"dashboard.welcome":   "Willkommen zurück",
		"dashboard.moderator": "Moderationswerkzeuge sind für dieses Konto freigeschaltet.",

		"form.submitting": "Bitte warten...",

		"label.email":           "E-Mail",
		"label.username":        "Benutzername",
		"label.usernameOrEmail": "Benutzername oder E-Mail",
		"label.password":        "Passwort",
		"label.confirmPassword": "Passwort bestätigen",
		"label.newPassword":     "Neues Passwort",
		"label.code":            "Bestätigungscode",
		"label.search":          "Suchen",

		"auth.google":      "Mit Google fortfahren",
		"auth.noAccount":   "Noch kein Konto?",
		"auth.haveAccount": "Schon ein Konto?",
		"auth.forgotLink":  "Passwort vergessen?",
		"auth.resend":      "Code erneut senden",
		"auth.verified":    "E-Mail bestätigt. Du kannst dich jetzt anmelden.",
		"auth.emailSent":   "Falls die Adresse existiert, ist eine E-Mail unterwegs.",
		"auth.codeSent":    "Ein neuer Code ist unterwegs.",
		"auth.resetDone":   "Passwort geändert. Du kannst dich jetzt anmelden.",
		"auth.backToLogin": "Zurück zur Anmeldung",

		"filter.apply": "Anwenden",
		"filter.reset": "Zurücksetzen",

		"list.loading":   "Mehr wird geladen...",
		"list.noResults": "Hier gibt es noch nichts.",
		"list.end":       "Das waren alle.",
		"list.error":     "Beim Laden der Liste ist etwas schiefgelaufen.",

		"auth.login":          "Anmelden",
		"auth.register":       "Konto erstellen",
		"auth.verify":         "E-Mail bestätigen",
		"auth.forgotPassword": "Passwort vergessen",
		"auth.resetPassword":  "Neues Passwort wählen",

		"emailInvalid":        "Gib eine gültige E-Mail-Adresse ein.",
		"emailMaxLength":      "Die E-Mail-Adresse ist zu lang.",
		"usernameMinLength":   "Der Benutzername braucht mindestens 3 Zeichen.",
		"usernameMaxLength":   "Der Benutzername darf höchstens 50 Zeichen haben.",
		"usernameRegex":       "Der Benutzername darf nur Buchstaben, Zahlen, - und _ enthalten.",
		"passwordMinLength":   "Das Passwort braucht mindestens 8 Zeichen.",
		"passwordUppercase":   "Das Passwort braucht einen Großbuchstaben.",
		"passwordLowercase":   "Das Passwort braucht einen Kleinbuchstaben.",
		"passwordNumber":      "Das Passwort braucht eine Zahl.",
		"passwordSpecial":     "Das Passwort braucht ein Sonderzeichen.",
		"passwordsDoNotMatch": "Die Passwörter stimmen nicht überein.",
		"codeLength":          "Der Bestätigungscode hat 6 Zeichen.",
		"tokenInvalid":        "Dieser Link ist nicht mehr gültig.",

		"usernameOrEmailRequired": "Gib deinen Benutzernamen oder deine E-Mail ein.",

		"FETCH_ERROR":      "Der Server ist gerade nicht erreichbar. Bitte versuch es erneut.",
		"VALIDATION_ERROR": "Bitte prüfe die markierten Felder.",

		"oauth.missing_code":             "Die Google-Anmeldung wurde abgebrochen.",
		"oauth.missing_code_verifier":    "Der Anmeldeversuch ist abgelaufen. Bitte versuch es erneut.",
		"oauth.token_exchange_failed":    "Die Google-Anmeldung ist fehlgeschlagen.",
		"oauth.backend_auth_failed":      "Die Anmeldung mit Google hat nicht geklappt.",
		"oauth.invalid_backend_response": "Die Anmeldung mit Google hat nicht geklappt.",
	},
}
