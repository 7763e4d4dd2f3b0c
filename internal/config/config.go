package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider is one configured OpenAI-compatible backend. Its position in
// the Providers slice is its priority: earlier entries win when several
// providers list the same model id.
type Provider struct {
	Name    string   `mapstructure:"name"`
	BaseURL string   `mapstructure:"base_url" validate:"required,url"`
	APIKey  string   `mapstructure:"api_key"`
	// Models, when set, fully replaces live discovery for this provider.
	Models []string `mapstructure:"models"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
	// APIKey is the optional gateway-wide secret. Empty means every
	// protected route is open (development mode).
	APIKey string `mapstructure:"api_key"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Config is loaded once at startup and treated as read-only afterwards.
// It is shared across all concurrent request handlers without locking.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Providers []Provider      `mapstructure:"providers"`
}

// Load reads configuration from config.yaml (or $CONFIG_FILE), layered
// with environment variables and an optional .env file. Any failure here
// is fatal to startup: a gateway without a valid provider list cannot
// route anything.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.dsn", "file:openbridge.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 50.0)
	v.SetDefault("rate_limit.burst", 100)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Resolve ENV: indirection so raw keys never need to live in the file.
	for i, p := range cfg.Providers {
		if strings.HasPrefix(p.APIKey, "ENV:") {
			envVar := strings.TrimPrefix(p.APIKey, "ENV:")
			val := os.Getenv(envVar)
			if val == "" {
				val = v.GetString(envVar)
			}
			cfg.Providers[i].APIKey = val
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Providers) == 0 {
		return fmt.Errorf("no providers configured")
	}

	validate := validator.New()
	for i, p := range c.Providers {
		if err := validate.Struct(&p); err != nil {
			return fmt.Errorf("provider %d (%s): %w", i, p.Name, err)
		}
	}

	return nil
}
