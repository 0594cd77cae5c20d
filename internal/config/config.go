// Package config loads runtime configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config encapsulates all runtime configuration knobs.
type Config struct {
	Billing BillingSettings
	Server  ServerSettings
	Log     LogSettings
}

// BillingSettings configures the remote invoice service client.
type BillingSettings struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// ServerSettings configures the HTTP facade.
type ServerSettings struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// LogSettings configures logging.
type LogSettings struct {
	Level  string
	Format string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Billing: BillingSettings{
			BaseURL: getEnv("BILLING_API_URL", ""),
			Token:   getEnv("BILLING_API_TOKEN", ""),
		},
		Server: ServerSettings{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
			Debug:   getEnvBool("SERVER_DEBUG", false),
		},
		Log: LogSettings{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	var err error
	if cfg.Billing.Timeout, err = getEnvDuration("BILLING_HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.ReadTimeout, err = getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}
