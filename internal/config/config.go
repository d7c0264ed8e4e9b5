package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all environment-sourced settings. It is built once at startup
// and passed by reference; business logic never reads the environment.
type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	JWTSecret    string
	JWTExpiry    time.Duration
	CookieExpiry time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// PublicURL is the externally reachable base URL, used to build
	// password-reset links.
	PublicURL string
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment with development defaults.
func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/campdir?parseTime=true"),

		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:    time.Duration(getEnvInt("JWT_EXPIRE", 30)) * 24 * time.Hour,
		CookieExpiry: time.Duration(getEnvInt("COOKIE_EXPIRE", 30)) * 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 25),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@campdir.dev"),
		FromName:     getEnv("FROM_NAME", "CampDir"),

		PublicURL: getEnv("PUBLIC_URL", "http://localhost:5000"),
	}

	if cfg.IsProduction() && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
