package db

import (
	"fmt"
	"time"

	"github.com/fragancia/fragancia-api/internal/logging"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection. Zero values fall back to the pool defaults.
type Options struct {
	// Schema becomes the search_path of every pooled connection.
	Schema          string
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func Connect(dsn string, opts Options) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	d, err := gorm.Open(postgres.Open(WithSearchPath(dsn, opts.Schema)), GormConfig(opts.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := configurePool(d, opts); err != nil {
		return nil, err
	}

	logging.Info().Str("schema", opts.Schema).Msg("connected to database")
	return d, nil
}

// GormConfig is shared with the test helpers so sqlite databases classify
// duplicate keys the same way postgres does.
func GormConfig(level logger.LogLevel) *gorm.Config {
	if level == 0 {
		level = logger.Warn
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logging.GormWriter{}, logger.Config{
			SlowThreshold:             100 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}

func configurePool(d *gorm.DB, opts Options) error {
	sqlDB, err := d.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 20
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	return nil
}

// Close releases the pool behind d.
func Close(d *gorm.DB) error {
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
