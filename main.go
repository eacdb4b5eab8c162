package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fragancia/fragancia-api/internal/config"
	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/fragancia/fragancia-api/internal/routes"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	httputil.SetDevelopment(cfg.IsDevelopment())

	sqlLevel := logger.Warn
	if cfg.IsDevelopment() {
		sqlLevel = logger.Info
	}
	d, err := db.Connect(cfg.DatabaseURL, db.Options{Schema: cfg.DBSchema, LogLevel: sqlLevel})
	if err != nil {
		logging.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close(d)

	if err := routes.MigrateAll(d, cfg.DBSchema); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	srv := &http.Server{
		Addr: "0.0.0.0:" + cfg.Port,
		Handler: routes.New(d, routes.Options{
			JWTSecret:      cfg.JWTSecret,
			TokenTTL:       cfg.TokenTTL(),
			BcryptCost:     cfg.BcryptCost,
			AllowedOrigins: cfg.AllowedOrigins(),
			AuthRateLimit:  cfg.AuthRateLimit,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Str("environment", cfg.Environment).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
