package config

type Config interface {
	EnvConfig
	SessionConfig
	GoogleConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetAPIURL() string
	GetFrontendURL() string
}

type mainConfig struct {
	EnvVars
	Session
	Google
}

func New() Config {
	return mainConfig{}
}
