package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// One realtime feed source. The system publishes one feed per line
// group, so a deployment typically lists several.
type Feed struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`

	// Extra request headers, e.g. an API key.
	Headers map[string]string `yaml:"headers"`
}

type Config struct {
	// Directory holding the static schedule tables (calendar.txt,
	// trips.txt, stops.txt, stop_times.txt).
	StaticDir string `yaml:"staticDir" validate:"required"`

	// Timezone observations are localized into at ingestion.
	Timezone string `yaml:"timezone"`

	// SQLite path for the observation store. Ignored when
	// PostgresURL is set.
	DatabasePath string `yaml:"databasePath"`
	PostgresURL  string `yaml:"postgresURL" validate:"omitempty,url"`

	// Prometheus listen address, e.g. ":9102". Blank disables.
	MetricsAddr string `yaml:"metricsAddr"`

	FetchTimeoutMS int `yaml:"fetchTimeoutMS" validate:"gte=0"`

	Feeds []Feed `yaml:"feeds"`
}

// Load reads and validates the configuration file. A .env file, if
// present, is loaded into the environment first; a handful of
// environment variables then override the file values for
// deployment-specific settings.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Timezone == "" {
		cfg.Timezone = "America/New_York"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/observations.db"
	}
	if cfg.FetchTimeoutMS == 0 {
		cfg.FetchTimeoutMS = 30000
	}

	if v := os.Getenv("TRAINTRACK_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("TRAINTRACK_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("TRAINTRACK_POSTGRES_URL"); v != "" {
		cfg.PostgresURL = v
	}
	if v := os.Getenv("TRAINTRACK_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	for _, f := range cfg.Feeds {
		if err := validate.Struct(f); err != nil {
			return nil, fmt.Errorf("invalid feed %q: %w", f.Name, err)
		}
	}

	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	return loc, nil
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
