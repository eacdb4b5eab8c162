// Command seed loads the embedded perfume catalog. Running it again only
// inserts what is missing.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fragancia/fragancia-api/internal/config"
	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/fragancia/fragancia-api/internal/seeds"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d, err := db.Connect(cfg.DatabaseURL, db.Options{Schema: cfg.DBSchema, MaxOpenConns: 2, MaxIdleConns: 2})
	if err != nil {
		return err
	}
	defer db.Close(d)

	if err := db.EnsureSchema(d, cfg.DBSchema); err != nil {
		return err
	}
	counts, err := seeds.SeedAll(ctx, d)
	if err != nil {
		return err
	}
	logging.Info().
		Int("brands", counts.Brands).
		Int("notes", counts.Notes).
		Int("perfumes", counts.Perfumes).
		Msg("seed finished")
	return nil
}
