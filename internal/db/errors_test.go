package db_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/dbtest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"pgx", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"pgx other code", &pgconn.PgError{Code: "23503"}, false},
		{"plain", errors.New("duplicate"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, db.IsUniqueViolation(tc.err))
		})
	}
}

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex"`
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	d := dbtest.Open(t)
	require.NoError(t, db.Migrate(d, "widgets", &widget{}))
	require.NoError(t, db.EnsureSchema(d, "ignored"))

	require.NoError(t, d.Create(&widget{Code: "a"}).Error)
	err := d.Create(&widget{Code: "a"}).Error

	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestIsNotFound(t *testing.T) {
	d := dbtest.Open(t)
	require.NoError(t, db.Migrate(d, "widgets", &widget{}))

	var w widget
	assert.True(t, db.IsNotFound(d.First(&w, 42).Error))
}
