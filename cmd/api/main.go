package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/adapters/auth/clerk"
	"github.com/Crypto-Mikael/pet-track/internal/adapters/push/webpush"
	"github.com/Crypto-Mikael/pet-track/internal/adapters/storage/postgres"
	"github.com/Crypto-Mikael/pet-track/internal/config"
	"github.com/Crypto-Mikael/pet-track/internal/platform/logger"
	"github.com/Crypto-Mikael/pet-track/internal/ports/auth"
	"github.com/Crypto-Mikael/pet-track/internal/router"

	"github.com/joho/godotenv"
)

// @title        Pet Track API
// @version      1.0
// @description  API de cuidado de mascotas: animales, baños, comidas, vacunas y métricas.
// @BasePath     /
func main() {
	// .env es opcional; en prod las vars vienen del entorno
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewFromEnv()

	// Sin secret configurado la API corre en modo dev: identidad por
	// X-Debug-User-ID, sin verificar tokens.
	var verifier auth.AuthVerifier
	var webhookVerifier *clerk.Verifier
	if cfg.ClerkJWTSecret != "" || cfg.ClerkWebhookSecret != "" {
		v := clerk.New(cfg.ClerkJWTSecret, cfg.ClerkWebhookSecret)
		if cfg.ClerkJWTSecret != "" {
			verifier = v
		}
		webhookVerifier = v
	}

	// DSN vacío => repos in-memory (dev); DSN configurado que no conecta
	// es un error de despliegue, no un fallback silencioso.
	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		var err error
		db, err = postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("db open error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
	}

	opts := router.Options{
		AuthVerifier:   verifier,
		DB:             db,
		Logger:         log,
		PushSender:     webpush.New(cfg.PushTimeout),
		ShareRateRPS:   cfg.ShareRateRPS,
		ShareRateBurst: cfg.ShareRateBurst,
	}
	if webhookVerifier != nil {
		opts.WebhookVerifier = webhookVerifier
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
