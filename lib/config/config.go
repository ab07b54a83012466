// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the Sentinel client configuration.
//
// Configuration is read from a single YAML file specified by:
//   - the SENTINEL_CONFIG environment variable, or
//   - the --config flag passed to the command, or
//   - $XDG_CONFIG_HOME/sentinel/config.yaml
//
// A missing file is not an error — every field has a usable default,
// so a fresh install works against a local backend without any setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// API configures the backend connection.
	API APIConfig `yaml:"api"`
	// Cache configures the response-cache freshness windows.
	Cache CacheConfig `yaml:"cache"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the backend root. Default: http://127.0.0.1:8000.
	BaseURL string `yaml:"base_url"`
	// TimeoutSeconds aborts a request that the backend has not
	// answered. Default: 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// CacheConfig configures the response-cache freshness windows.
type CacheConfig struct {
	// MetricsTTLSeconds bounds the staleness of cached metric
	// history. Default: 60.
	MetricsTTLSeconds int `yaml:"metrics_ttl_seconds"`
	// RulesTTLSeconds bounds the staleness of cached rule lists.
	// Default: 300.
	RulesTTLSeconds int `yaml:"rules_ttl_seconds"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://127.0.0.1:8000",
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			MetricsTTLSeconds: 60,
			RulesTTLSeconds:   300,
		},
	}
}

// Path returns the config file location: SENTINEL_CONFIG if set,
// otherwise $XDG_CONFIG_HOME/sentinel/config.yaml (with the usual
// ~/.config fallback).
func Path() string {
	if envPath := os.Getenv("SENTINEL_CONFIG"); envPath != "" {
		return envPath
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "sentinel-config.yaml")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "sentinel", "config.yaml")
}

// Load reads the configuration from path, or from Path() when path is
// empty. A missing file yields Default(). Fields absent from the file
// keep their defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}

	configuration := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return configuration, nil
		}
		return configuration, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &configuration); err != nil {
		return configuration, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := configuration.validate(); err != nil {
		return configuration, fmt.Errorf("config: %s: %w", path, err)
	}
	return configuration, nil
}

func (c Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	if c.Cache.MetricsTTLSeconds <= 0 {
		return fmt.Errorf("cache.metrics_ttl_seconds must be positive, got %d", c.Cache.MetricsTTLSeconds)
	}
	if c.Cache.RulesTTLSeconds <= 0 {
		return fmt.Errorf("cache.rules_ttl_seconds must be positive, got %d", c.Cache.RulesTTLSeconds)
	}
	return nil
}

// Timeout returns the request ceiling as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MetricsTTL returns the metric-history freshness window.
func (c CacheConfig) MetricsTTL() time.Duration {
	return time.Duration(c.MetricsTTLSeconds) * time.Second
}

// RulesTTL returns the rule-list freshness window.
func (c CacheConfig) RulesTTL() time.Duration {
	return time.Duration(c.RulesTTLSeconds) * time.Second
}
