// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Places.RatePerSecond != 10 {
		t.Errorf("expected 10 req/s default, got %v", cfg.Places.RatePerSecond)
	}
	if cfg.Places.Timeout != 5*time.Second {
		t.Errorf("expected 5s places timeout, got %v", cfg.Places.Timeout)
	}
	if !cfg.Sources.TPL.Enabled || !cfg.Sources.OpenData.Enabled || !cfg.Sources.Museums.Enabled {
		t.Error("all sources should be enabled by default")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json log format default, got %q", cfg.Logging.Format)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"GOOGLE_MAPS_API_KEY", "places.api_key"},
		{"GOOGLE_API_KEY", "places.api_key"},
		{"OUTPUT_DIR", "output.dir"},
		{"CACHE_PATH", "cache.path"},
		{"LOG_LEVEL", "logging.level"},
		{"TPL_ENABLED", "sources.tpl.enabled"},
		{"HOME", ""},   // unrelated env vars must be dropped
		{"PATH", ""},   // ditto
		{"EDITOR", ""}, // ditto
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadWithKoanfEnvOverride(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key-123")
	t.Setenv("OUTPUT_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}

	if cfg.Places.APIKey != "test-key-123" {
		t.Errorf("API key not picked up from env, got %q", cfg.Places.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level not picked up from env, got %q", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
places:
  rate_per_second: 2
output:
  dir: /tmp/kidsevents-test
  weekly_split: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}

	if cfg.Places.RatePerSecond != 2 {
		t.Errorf("expected rate 2 from file, got %v", cfg.Places.RatePerSecond)
	}
	if cfg.Output.Dir != "/tmp/kidsevents-test" {
		t.Errorf("expected output dir from file, got %q", cfg.Output.Dir)
	}
	if cfg.Output.WeeklySplit {
		t.Error("weekly_split should be disabled by file")
	}
	// untouched values keep defaults
	if cfg.Places.Timeout != 5*time.Second {
		t.Errorf("expected default places timeout, got %v", cfg.Places.Timeout)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			"zero rate",
			func(c *Config) { c.Places.RatePerSecond = 0 },
			"gt",
		},
		{
			"empty cache path",
			func(c *Config) { c.Cache.Path = "" },
			"required",
		},
		{
			"bad log format",
			func(c *Config) { c.Logging.Format = "xml" },
			"oneof",
		},
		{
			"bad source url",
			func(c *Config) { c.Sources.TPL.URL = "not-a-url" },
			"sources.tpl.url",
		},
		{
			"bad places url",
			func(c *Config) { c.Places.BaseURL = "ftp://example.com" },
			"places.base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidateDisabledSourceSkipsURLCheck(t *testing.T) {
	cfg := defaultConfig()
	cfg.Sources.TPL.Enabled = false
	cfg.Sources.TPL.URL = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled source should not require a URL: %v", err)
	}
}
