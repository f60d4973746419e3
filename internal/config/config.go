// Package config loads and validates runtime settings at startup.
// Values come from the environment (optionally seeded from .env) and an
// optional config file; a missing required key aborts startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the API.
type Config struct {
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	MLAPIURL      string        `mapstructure:"ml_api_url"`
	OracleTimeout time.Duration `mapstructure:"oracle_timeout"`
	FeedWindow    int           `mapstructure:"feed_window"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	UploadDir             string   `mapstructure:"upload_dir"`
	NotificationsSchedule string   `mapstructure:"notifications_schedule"`
	CORSOrigins           []string `mapstructure:"cors_origins"`

	PlatformWallet string  `mapstructure:"platform_wallet"`
	PlatformFee    float64 `mapstructure:"platform_fee"`

	Debug   bool `mapstructure:"debug"`
	LogJSON bool `mapstructure:"log_json"`
}

var defaults = map[string]interface{}{
	"port":                   "5050",
	"database_url":           "",
	"redis_url":              "",
	"jwt_secret":             "",
	"token_ttl":              "24h",
	"ml_api_url":             "",
	"oracle_timeout":         "60s",
	"feed_window":            25,
	"gemini_api_key":         "",
	"gemini_model":           "gemini-2.5-flash",
	"upload_dir":             "uploads",
	"notifications_schedule": "@every 5m",
	"cors_origins":           []string{"*"},
	"platform_wallet":        "0x2bD6A067FAb5603d38c995f1807C92fD836f0336",
	"platform_fee":           0.001,
	"debug":                  false,
	"log_json":               false,
}

// LoadDotEnv reads .env into the process environment when the file exists.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load resolves the configuration from v. Keys are bound to their
// upper-case environment variable names (database_url -> DATABASE_URL).
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for key, def := range defaults {
		v.SetDefault(key, def)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.MLAPIURL == "" {
		errs = append(errs, errors.New("ML_API_URL is required"))
	}
	if c.FeedWindow < 1 {
		errs = append(errs, fmt.Errorf("FEED_WINDOW must be a positive integer, got %d", c.FeedWindow))
	}
	if c.OracleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ORACLE_TIMEOUT must be positive, got %s", c.OracleTimeout))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	return errors.Join(errs...)
}
