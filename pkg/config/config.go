package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`
	Retry struct {
		MaxRetries       int `yaml:"max_retries"`
		InitialBackoffMs int `yaml:"initial_backoff_ms"`
		MaxBackoffMs     int `yaml:"max_backoff_ms"`
	} `yaml:"retry"`
	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	State struct {
		Dir string `yaml:"dir"`
	} `yaml:"state"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Timeout returns the HTTP client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// InitialBackoff returns the first retry backoff interval.
func (c *Config) InitialBackoff() time.Duration {
	return time.Duration(c.Retry.InitialBackoffMs) * time.Millisecond
}

// MaxBackoff returns the retry backoff ceiling.
func (c *Config) MaxBackoff() time.Duration {
	return time.Duration(c.Retry.MaxBackoffMs) * time.Millisecond
}

// CredentialsPath returns the location of the persisted session file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.State.Dir, "session.json")
}

// PrefsPath returns the location of the persisted view-preferences file.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.State.Dir, "prefs.json")
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %v", err)
		}
	}

	// Override with environment variables if set
	if baseURL := os.Getenv("HOMEQUEST_API_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("HOMEQUEST_API_TIMEOUT"); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid HOMEQUEST_API_TIMEOUT value: %v", err)
		}
		cfg.API.TimeoutSeconds = seconds
	}
	if retries := os.Getenv("HOMEQUEST_MAX_RETRIES"); retries != "" {
		n, err := strconv.Atoi(retries)
		if err != nil {
			return nil, fmt.Errorf("invalid HOMEQUEST_MAX_RETRIES value: %v", err)
		}
		cfg.Retry.MaxRetries = n
	}
	if dir := os.Getenv("HOMEQUEST_STATE_DIR"); dir != "" {
		cfg.State.Dir = dir
	}
	if level := os.Getenv("HOMEQUEST_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	// Set default values
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 3
	}
	if cfg.Retry.InitialBackoffMs <= 0 {
		cfg.Retry.InitialBackoffMs = 100
	}
	if cfg.Retry.MaxBackoffMs <= 0 {
		cfg.Retry.MaxBackoffMs = 10000
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = 20
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 40
	}
	if cfg.State.Dir == "" {
		home, err := os.UserConfigDir()
		if err != nil {
			home = "."
		}
		cfg.State.Dir = filepath.Join(home, "homequest-admin")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}

	// Validation
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url (or HOMEQUEST_API_URL) is required")
	}
	if cfg.Retry.MaxRetries < 0 {
		return nil, fmt.Errorf("retry.max_retries must be non-negative")
	}
	if cfg.Retry.MaxBackoffMs < cfg.Retry.InitialBackoffMs {
		return nil, fmt.Errorf("retry.max_backoff_ms must be at least retry.initial_backoff_ms")
	}

	return &cfg, nil
}
