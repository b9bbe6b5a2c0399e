package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr      = ":8080"
	defaultDSN       = "homeservice.db"
	defaultJWTSecret = "change-me-jwt-secret"
	defaultJWTTTL    = "24h"
)

type Config struct {
	AppEnv    string
	Addr      string
	DSN       string
	JWTSecret string
	JWTTTL    time.Duration

	// SMTP settings for the notification sink. When Host is empty the
	// server falls back to a log-only notifier.
	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// Optional .env for local development; ignore when absent.
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = getEnv("HTTP_ADDR", defaultAddr)
	cfg.DSN = getEnv("DATABASE_URL", defaultDSN)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	ttlRaw := strings.TrimSpace(getEnv("JWT_TTL", defaultJWTTTL))
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value %q: %w", ttlRaw, err)
	}
	cfg.JWTTTL = ttl

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTPPort = getEnv("SMTP_PORT", "587")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "noreply@homeservice.local")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.isProdLike() {
		if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func (c *Config) isProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
