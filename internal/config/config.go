package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string
	Env  string

	// DSN de Postgres. Si viene vacío, el router cae a repos in-memory (dev).
	DatabaseDSN string

	// Secreto HS256 para tokens de sesión de Clerk (self-hosted / templates).
	ClerkJWTSecret string
	// Secreto compartido para firmar webhooks de Clerk.
	ClerkWebhookSecret string

	// Rate limit del endpoint de share (por IP).
	ShareRateRPS   float64
	ShareRateBurst int

	PushTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DatabaseDSN:        os.Getenv("DB_DSN"),
		ClerkJWTSecret:     os.Getenv("CLERK_JWT_SECRET"),
		ClerkWebhookSecret: os.Getenv("CLERK_WEBHOOK_SECRET"),
		ShareRateRPS:       getEnvFloat("SHARE_RATE_RPS", 1),
		ShareRateBurst:     getEnvInt("SHARE_RATE_BURST", 5),
		PushTimeout:        10 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
