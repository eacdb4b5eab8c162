package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EnsureSchema creates the postgres schema when it is missing. It is a no-op
// for an empty name and for other dialects.
func EnsureSchema(d *gorm.DB, schema string) error {
	if schema == "" || d.Dialector.Name() != "postgres" {
		return nil
	}
	if err := d.Exec(createSchemaSQL(schema)).Error; err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}
	return nil
}

func createSchemaSQL(schema string) string {
	return "CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(schema)
}

// WithSearchPath adds a search_path runtime parameter naming schema to a
// URL or keyword/value DSN. pgx sends it on every new connection.
func WithSearchPath(dsn, schema string) string {
	if schema == "" {
		return dsn
	}
	path := pq.QuoteIdentifier(schema)

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		q.Set("search_path", path)
		u.RawQuery = q.Encode()
		return u.String()
	}

	value := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(path)
	return strings.TrimSpace(dsn) + " search_path='" + value + "'"
}

// Migrate auto-migrates the models of one feature.
func Migrate(d *gorm.DB, feature string, models ...any) error {
	if err := d.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate %s: %w", feature, err)
	}
	return nil
}
