package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	AdminPassword string
	ResetPassword string // отдельный пароль для полного сброса баллов
	CORSOrigins   string
	LogLevel      string
	Env           string // dev|prod
	SentryDSN     string
	DBTimeout     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   mustEnv("DATABASE_URL"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		AdminPassword: mustEnv("ADMIN_PASSWORD"),
		ResetPassword: mustEnv("RESET_PASSWORD"),
		CORSOrigins:   getenv("CORS_ORIGINS", "*"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Env:           getenv("ENV", "dev"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		DBTimeout:     getdur("DB_TIMEOUT", 5*time.Second),
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
