package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	Provider ProviderConfig

	// OAuthRedirectURL is where the identity provider sends the browser
	// after consent. Defaults to the sidecar's own callback route.
	OAuthRedirectURL string

	// RefreshMargin is how long before access-token expiry the gateway
	// refreshes the session.
	RefreshMargin time.Duration

	// FallbackDelay is how long a failed OAuth callback waits before
	// redirecting back to the welcome route.
	FallbackDelay time.Duration
}

type ProviderConfig struct {
	URL     string
	AnonKey string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	refreshMargin, err := time.ParseDuration(getEnv("SESSION_REFRESH_MARGIN", "30s"))
	if err != nil {
		refreshMargin = 30 * time.Second
	}

	fallbackDelay, err := time.ParseDuration(getEnv("AUTH_FALLBACK_DELAY", "3s"))
	if err != nil {
		fallbackDelay = 3 * time.Second
	}

	port := getEnv("PORT", "4778")

	return &Config{
		Port:     port,
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Provider: ProviderConfig{
			URL:     getEnvOrPanic("PROVIDER_URL"),
			AnonKey: getEnvOrPanic("PROVIDER_ANON_KEY"),
		},

		OAuthRedirectURL: getEnv("OAUTH_REDIRECT_URL", "http://localhost:"+port+"/auth/callback"),

		RefreshMargin: refreshMargin,
		FallbackDelay: fallbackDelay,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
