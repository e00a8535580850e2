package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	apiURLVar      = "API_URL"
	frontendURLVar = "FRONTEND_URL"

	devAPIURL  = "http://localhost:8080"
	prodAPIURL = "https://api.tournamentfox.com"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "TournamentFox Web")
}

func (e EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetAPIURL returns the base URL of the backend REST API. When API_URL is
// unset, development environments fall back to the local backend and all
// other environments to the production host.
func (e EnvVars) GetAPIURL() string {
	if url := os.Getenv(apiURLVar); url != "" {
		return url
	}
	if e.GetEnv() == "DEV" {
		return devAPIURL
	}
	return prodAPIURL
}

// GetFrontendURL returns the externally visible base URL of this frontend,
// used for OAuth redirects back into the application.
func (EnvVars) GetFrontendURL() string {
	return GetEnv(frontendURLVar, "http://localhost:3000")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
