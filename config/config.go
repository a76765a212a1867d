package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	Contest       ContestConfig       `yaml:"contest"`
	Queue         QueueConfig         `yaml:"queue"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn" validate:"required"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL            string `yaml:"url" validate:"required"`
	ConsumerPrefix string `yaml:"consumer_prefix"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat      string `yaml:"log_format" validate:"omitempty,oneof=json text"`
}

// ContestConfig tunes advancement.
type ContestConfig struct {
	// DefaultSpots caps advancement for sessions that set none.
	DefaultSpots int `yaml:"default_spots" validate:"gte=0"`
	// RandomSeed makes draws and advancement shuffles reproducible.
	RandomSeed *uint64 `yaml:"random_seed,omitempty"`
}

// QueueConfig holds River report queue configuration.
type QueueConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxWorkers int  `yaml:"max_workers" validate:"gte=0,lte=100"`
}

const (
	defaultConsumerPrefix = "barbershop_"
	defaultSpots          = 10
	defaultMaxWorkers     = 10
)

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if err := applyNumericEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	cfg.Observability.MetricsAddress = os.Getenv("METRICS_ADDRESS") // optional; empty disables metrics
	cfg.Observability.Environment = os.Getenv("ENV")
	cfg.Observability.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.Queue.Enabled = os.Getenv("QUEUE_ENABLED") != "false"

	if err := applyNumericEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyNumericEnv(cfg *Config) error {
	if v := os.Getenv("CONTEST_DEFAULT_SPOTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CONTEST_DEFAULT_SPOTS value: %w", err)
		}
		cfg.Contest.DefaultSpots = n
	}
	if v := os.Getenv("CONTEST_RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CONTEST_RANDOM_SEED value: %w", err)
		}
		cfg.Contest.RandomSeed = &seed
	}
	if v := os.Getenv("QUEUE_MAX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid QUEUE_MAX_WORKERS value: %w", err)
		}
		cfg.Queue.MaxWorkers = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.NATS.ConsumerPrefix == "" {
		c.NATS.ConsumerPrefix = defaultConsumerPrefix
	}
	if c.Contest.DefaultSpots == 0 {
		c.Contest.DefaultSpots = defaultSpots
	}
	if c.Queue.MaxWorkers == 0 {
		c.Queue.MaxWorkers = defaultMaxWorkers
	}
	if c.Observability.LogFormat == "" {
		c.Observability.LogFormat = "json"
	}
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
