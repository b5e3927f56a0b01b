package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultDatabaseURL   = "sqlite:///./pt2.db"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "secret"
	defaultTokenSecret   = "dev-secret-change-me"
	defaultTokenTTL      = 60 * time.Minute
	defaultLogLevel      = "INFO"
)

// Config is built once at startup and handed to the components that need it.
type Config struct {
	Port        string
	DatabaseURL string

	AdminUsername string
	AdminPassword string
	TokenSecret   string
	TokenTTL      time.Duration

	LogLevel string
	LogFile  string

	CORSAllowedOrigins []string
}

func Load() (Config, error) {
	cfg := Config{
		Port:               getenv("APP_PORT", defaultPort),
		DatabaseURL:        getenv("DATABASE_URL", defaultDatabaseURL),
		AdminUsername:      getenv("API_USER", defaultAdminUsername),
		AdminPassword:      getenv("API_PASS", defaultAdminPassword),
		TokenSecret:        getenv("SECRET_KEY", defaultTokenSecret),
		TokenTTL:           defaultTokenTTL,
		LogLevel:           strings.ToUpper(getenv("LOG_LEVEL", defaultLogLevel)),
		LogFile:            strings.TrimSpace(os.Getenv("LOG_FILE")),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if raw := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer")
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("API_USER and API_PASS must not be empty")
	}

	switch cfg.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR")
	}

	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in
// development key.
func (c Config) UsesDefaultSecret() bool {
	return c.TokenSecret == defaultTokenSecret
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
