// Package config loads the server configuration from built-in defaults,
// an optional .env.local file and the process environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DotEnvFile is loaded before the environment is read. A missing file is not an error.
const DotEnvFile = ".env.local"

type Config struct {
	Port        string `koanf:"port"`
	DatabaseURL string `koanf:"database_url"`
	DBSchema    string `koanf:"db_schema"` // postgres schema for all tables; empty uses the server default
	Environment string `koanf:"environment"`

	// Tokens
	JWTSecret string `koanf:"jwt_secret"`
	JWTExpire string `koanf:"jwt_expire"` // Go duration or "<n>d"

	// Passwords
	BcryptCost int `koanf:"bcrypt_cost"`

	// HTTP
	CORSOrigins   string `koanf:"cors_origins"` // comma separated
	AuthRateLimit int    `koanf:"auth_rate_limit"`

	// Logging
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func defaults() Config {
	return Config{
		Port:          "5050",
		Environment:   "production",
		JWTExpire:     "7d",
		BcryptCost:    10,
		CORSOrigins:   "*",
		AuthRateLimit: 20,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load reads .env.local (if present) and then the environment on top of
// the defaults. The result is validated.
func Load() (*Config, error) {
	_ = godotenv.Load(DotEnvFile)
	return load(env.Provider("", ".", strings.ToLower))
}

func load(envProvider koanf.Provider) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is empty"))
	}
	if _, err := ParseTTL(c.JWTExpire); err != nil {
		errs = append(errs, fmt.Errorf("JWT_EXPIRE: %w", err))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST out of range: %d", c.BcryptCost))
	}
	if c.AuthRateLimit < 0 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT must not be negative: %d", c.AuthRateLimit))
	}
	return errors.Join(errs...)
}

// TokenTTL returns the parsed JWT_EXPIRE. Validate guarantees it parses.
func (c *Config) TokenTTL() time.Duration {
	d, _ := ParseTTL(c.JWTExpire)
	return d
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// AllowedOrigins splits CORS_ORIGINS into a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ParseTTL accepts Go durations ("15m", "168h") and whole days ("7d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", s)
	}
	return d, nil
}
