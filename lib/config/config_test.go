// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	configuration, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if configuration.API.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q", configuration.API.BaseURL)
	}
	if configuration.API.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", configuration.API.Timeout())
	}
	if configuration.Cache.MetricsTTL() != 60*time.Second {
		t.Errorf("MetricsTTL = %v", configuration.Cache.MetricsTTL())
	}
	if configuration.Cache.RulesTTL() != 300*time.Second {
		t.Errorf("RulesTTL = %v", configuration.Cache.RulesTTL())
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: https://tiba.example.com\n")
	configuration, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if configuration.API.BaseURL != "https://tiba.example.com" {
		t.Errorf("BaseURL = %q", configuration.API.BaseURL)
	}
	// Unset fields keep their defaults.
	if configuration.API.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d", configuration.API.TimeoutSeconds)
	}
	if configuration.Cache.RulesTTLSeconds != 300 {
		t.Errorf("RulesTTLSeconds = %d", configuration.Cache.RulesTTLSeconds)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"empty base url", "api:\n  base_url: \"\"\n"},
		{"negative timeout", "api:\n  timeout_seconds: -5\n"},
		{"zero metrics ttl", "cache:\n  metrics_ttl_seconds: 0\n"},
		{"malformed yaml", "api: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.contents)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
