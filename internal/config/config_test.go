package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fragancia")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "http://127.0.0.1:5500, https://fragancia.app")
	t.Setenv("AUTH_RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost/fragancia", cfg.DatabaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, []string{"http://127.0.0.1:5500", "https://fragancia.app"}, cfg.AllowedOrigins())
	assert.False(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.DBSchema)
}

func TestLoad_DBSchema(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fragancia")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_SCHEMA", "fragancia")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fragancia", cfg.DBSchema)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "15m", want: 15 * time.Minute},
		{in: "168h", want: 168 * time.Hour},
		{in: "0d", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTTL(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidate_BcryptCostRange(t *testing.T) {
	cfg := defaults()
	cfg.DatabaseURL = "postgres://x"
	cfg.JWTSecret = "k"
	cfg.BcryptCost = 2
	assert.Error(t, cfg.Validate())

	cfg.BcryptCost = 12
	assert.NoError(t, cfg.Validate())
}
