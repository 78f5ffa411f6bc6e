package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDir         = "configs"
	defaultConfigFile = "values_local.yaml"
)

// Column storage backends.
const (
	StorageFile   = "file"
	StoragePG     = "pg"
	StorageMemory = "memory"
)

// Config is read from configs/$CONFIG_FILE and then overridden from the environment.
type Config struct {
	Service struct {
		Name       string `yaml:"name" env:"SERVICE_NAME"`
		LogLevel   string `yaml:"log_level" env:"LOG_LEVEL"`
		HealthAddr string `yaml:"health_addr" env:"HEALTH_ADDR"`
	} `yaml:"service"`

	Backend struct {
		URL     string        `yaml:"url" env:"BACKEND_URL"`
		Token   string        `yaml:"token" env:"BACKEND_TOKEN"`
		Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT"`
	} `yaml:"backend"`

	Feeds struct {
		URL            string        `yaml:"url" env:"FEEDS_URL"`
		PingInterval   time.Duration `yaml:"ping_interval" env:"FEEDS_PING_INTERVAL"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay" env:"FEEDS_RECONNECT_DELAY"`
	} `yaml:"feeds"`

	Columns struct {
		Storage string `yaml:"storage" env:"COLUMNS_STORAGE"` // file | pg | memory
		Path    string `yaml:"path" env:"COLUMNS_PATH"`
	} `yaml:"columns"`

	DB string `yaml:"db_dsn" env:"DATABASE_DSN"`

	Telegram struct {
		Token  string `yaml:"token" env:"TELEGRAM_TOKEN"`
		ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`

	Tracing struct {
		Enabled bool   `yaml:"enabled" env:"TRACING_ENABLED"`
		Host    string `yaml:"host" env:"TRACING_HOST"`
		Port    int    `yaml:"port" env:"TRACING_PORT"`
		// SampleRate below 1 samples probabilistically.
		SampleRate float64 `yaml:"sample_rate" env:"TRACING_SAMPLE_RATE"`
		SpanPrefix string  `yaml:"span_prefix" env:"TRACING_SPAN_PREFIX"`
	} `yaml:"tracing"`

	ConfirmTimeout time.Duration `yaml:"confirm_timeout" env:"CONFIRM_TIMEOUT"`
	Currency       string        `yaml:"currency" env:"DISPLAY_CURRENCY"`
}

// NewConfig loads configs/$CONFIG_FILE (values_local.yaml by default).
// A missing default file is not an error: defaults and environment still apply.
func NewConfig() (*Config, error) {
	name := os.Getenv(configFilePathENV)
	if name == "" {
		return load(filepath.Join(configDir, defaultConfigFile), true)
	}
	return load(filepath.Join(configDir, name), false)
}

// Load reads the config from an explicit path.
func Load(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, optional bool) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		ConfirmTimeout: 30 * time.Second,
		Currency:       "INR",
	}
	cfg.Service.Name = "trade_desk"
	cfg.Service.LogLevel = "info"
	cfg.Service.HealthAddr = ":8080"
	cfg.Backend.Timeout = 10 * time.Second
	cfg.Feeds.PingInterval = 20 * time.Second
	cfg.Feeds.ReconnectDelay = time.Second
	cfg.Columns.Storage = StorageFile
	cfg.Columns.Path = "data/columns.json"
	cfg.Tracing.Host = "localhost"
	cfg.Tracing.Port = 6831
	cfg.Tracing.SampleRate = 1
	cfg.Tracing.SpanPrefix = "desk"
	return cfg
}

func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	switch c.Columns.Storage {
	case StorageFile:
		if c.Columns.Path == "" {
			return fmt.Errorf("columns.path is required for file storage")
		}
	case StoragePG:
		if c.DB == "" {
			return fmt.Errorf("db_dsn is required for pg column storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown columns.storage %q", c.Columns.Storage)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.ConfirmTimeout <= 0 {
		return fmt.Errorf("confirm_timeout must be positive")
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be within [0, 1]")
	}
	return nil
}
