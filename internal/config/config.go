package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings needed to run the console.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// APIConfig configures access to the support backend.
type APIConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// WatchConfig controls the polling dashboard and its prometheus listener.
type WatchConfig struct {
	Interval       time.Duration `yaml:"interval"`
	MetricsAddress string        `yaml:"metricsAddress"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONSOLE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8001",
			Timeout: 15 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Watch: WatchConfig{
			Interval:       15 * time.Second,
			MetricsAddress: ":2112",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONSOLE_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CONSOLE_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("CONSOLE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CONSOLE_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("CONSOLE_WATCH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.Interval = d
		}
	}
	if v := os.Getenv("CONSOLE_METRICS_ADDRESS"); v != "" {
		cfg.Watch.MetricsAddress = v
	}
	if v := os.Getenv("CONSOLE_WATCH_DISABLE_METRICS"); strings.EqualFold(v, "true") || v == "1" {
		cfg.Watch.MetricsAddress = ""
	}
}
