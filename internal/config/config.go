package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Redis       RedisConfig       `yaml:"redis"`
	Database    DatabaseConfig    `yaml:"database"`
	SQS         SQSConfig         `yaml:"sqs"`
	Rates       RatesConfig       `yaml:"rates"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	AdsPlatform AdsPlatformConfig `yaml:"ads_platform"`
	Accounts    AccountsConfig    `yaml:"accounts"`
	Publish     PublishConfig     `yaml:"publish"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// RedisConfig holds the optional Redis connection used for the historical
// CPC cache and the FX-rate snapshot. An empty URL disables Redis.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// DatabaseConfig holds the optional Postgres connection for draft storage.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SQSConfig holds the queues used for account push events and best-effort
// campaign registration.
type SQSConfig struct {
	Region                string `yaml:"region"`
	AccountEventsQueueURL string `yaml:"account_events_queue_url"`
	RegistrationQueueURL  string `yaml:"registration_queue_url"`
	Enabled               bool   `yaml:"enabled"`
}

// RatesConfig holds the FX-rate provider configuration
type RatesConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c RatesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MetricsConfig holds the live keyword-metrics provider configuration
type MetricsConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c MetricsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AdsPlatformConfig holds the external ads platform API configuration
type AdsPlatformConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c AdsPlatformConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AccountsConfig tunes the account sync reconciler
type AccountsConfig struct {
	// MaxVisible caps the account picker list (subscription tier limit).
	// Cosmetic only; the authoritative set is never truncated.
	MaxVisible        int `yaml:"max_visible"`
	RefreshDebounceMs int `yaml:"refresh_debounce_ms"`
}

// RefreshDebounce returns the debounce window as a duration
func (c AccountsConfig) RefreshDebounce() time.Duration {
	return time.Duration(c.RefreshDebounceMs) * time.Millisecond
}

// PublishConfig tunes the publish orchestrator's cosmetic progress ticker
type PublishConfig struct {
	ProgressTickMs   int `yaml:"progress_tick_ms"`
	ProgressStep     int `yaml:"progress_step"`
	BannerDismissSec int `yaml:"banner_dismiss_sec"`
}

// ProgressTick returns the ticker interval as a duration
func (c PublishConfig) ProgressTick() time.Duration {
	return time.Duration(c.ProgressTickMs) * time.Millisecond
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Rates.TimeoutSeconds == 0 {
		cfg.Rates.TimeoutSeconds = 10
	}
	if cfg.Metrics.TimeoutSeconds == 0 {
		cfg.Metrics.TimeoutSeconds = 30
	}
	if cfg.AdsPlatform.TimeoutSeconds == 0 {
		cfg.AdsPlatform.TimeoutSeconds = 30
	}
	if cfg.SQS.Region == "" {
		cfg.SQS.Region = "us-west-2"
	}
	if cfg.Accounts.MaxVisible == 0 {
		cfg.Accounts.MaxVisible = 20
	}
	if cfg.Accounts.RefreshDebounceMs == 0 {
		cfg.Accounts.RefreshDebounceMs = 2000
	}
	if cfg.Publish.ProgressTickMs == 0 {
		cfg.Publish.ProgressTickMs = 300
	}
	if cfg.Publish.ProgressStep == 0 {
		cfg.Publish.ProgressStep = 5
	}
	if cfg.Publish.BannerDismissSec == 0 {
		cfg.Publish.BannerDismissSec = 8
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("ADS_PLATFORM_API_KEY"); v != "" {
		cfg.AdsPlatform.APIKey = v
	}
	if v := os.Getenv("ADS_PLATFORM_BASE_URL"); v != "" {
		cfg.AdsPlatform.BaseURL = v
	}
	if v := os.Getenv("RATES_BASE_URL"); v != "" {
		cfg.Rates.BaseURL = v
	}
	if v := os.Getenv("METRICS_BASE_URL"); v != "" {
		cfg.Metrics.BaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SQS_ACCOUNT_EVENTS_QUEUE_URL"); v != "" {
		cfg.SQS.AccountEventsQueueURL = v
		cfg.SQS.Enabled = true
	}
	if v := os.Getenv("SQS_REGISTRATION_QUEUE_URL"); v != "" {
		cfg.SQS.RegistrationQueueURL = v
		cfg.SQS.Enabled = true
	}

	return cfg, nil
}
