package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// AuthSecret keys both confirmation-code derivation and bearer token
	// signing. Rotating it invalidates all outstanding codes and tokens.
	AuthSecret string
	TokenTTL   time.Duration

	EnableMailDispatch bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "ratehub"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	secret := strings.TrimSpace(os.Getenv("AUTH_SECRET"))
	if secret == "" {
		return Config{}, errors.New("AUTH_SECRET is required")
	}

	tokenTTL := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.New("TOKEN_TTL must be a duration such as 24h")
		}
		tokenTTL = parsed
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		AuthSecret:  secret,
		TokenTTL:    tokenTTL,

		EnableMailDispatch: envBool("ENABLE_MAIL_DISPATCH", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
