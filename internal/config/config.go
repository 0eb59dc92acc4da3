package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	PublicBaseURL string

	SessionSecret     string
	SessionTTLMinutes int

	CertValidityDays int

	DefaultLocale string

	RateLimitRequests      int
	RateLimitWindowSeconds int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		PostgresDSN:            os.Getenv("POSTGRES_DSN"),
		LogLevel:               envDefault("LOG_LEVEL", "info"),
		PublicBaseURL:          envDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		SessionTTLMinutes:      envIntDefault("SESSION_TTL_MINUTES", 720),
		CertValidityDays:       envIntDefault("CERT_VALIDITY_DAYS", 180),
		DefaultLocale:          envDefault("DEFAULT_LOCALE", "en"),
		RateLimitRequests:      envIntDefault("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindowSeconds: envIntDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
	}
}

func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c Config) CertValidity() time.Duration {
	if c.CertValidityDays <= 0 {
		return 0
	}
	return time.Duration(c.CertValidityDays) * 24 * time.Hour
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
