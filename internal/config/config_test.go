package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Backend.BaseURL != DefaultBackendURL() {
		t.Errorf("Expected backend URL %s, got %s", DefaultBackendURL(), cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 0 {
		t.Errorf("Expected no backend timeout by default, got %v", cfg.Backend.Timeout)
	}
	if cfg.UI.IndicatorSize != 120 || cfg.UI.StrokeWidth != 14 {
		t.Errorf("Expected indicator geometry 120/14, got %d/%d", cfg.UI.IndicatorSize, cfg.UI.StrokeWidth)
	}
	if cfg.UI.ToastDuration != time.Second {
		t.Errorf("Expected toast duration 1s, got %v", cfg.UI.ToastDuration)
	}
	if cfg.Behavior.DiscardStale {
		t.Error("Expected stale responses to be applied by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"empty backend", func(c *Config) { c.Backend.BaseURL = "" }, "base_url is required"},
		{"backend without scheme", func(c *Config) { c.Backend.BaseURL = "localhost:8000" }, "scheme"},
		{"backend ftp scheme", func(c *Config) { c.Backend.BaseURL = "ftp://example.com" }, "scheme"},
		{"backend without host", func(c *Config) { c.Backend.BaseURL = "http://" }, "missing host"},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = -time.Second }, "timeout"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, "invalid theme"},
		{"zero indicator size", func(c *Config) { c.UI.IndicatorSize = 0 }, "indicator_size"},
		{"stroke too wide", func(c *Config) { c.UI.StrokeWidth = 120 }, "stroke_width"},
		{"zero toast duration", func(c *Config) { c.UI.ToastDuration = 0 }, "toast_duration"},
		{"invalid format", func(c *Config) { c.Output.DefaultFormat = "xml" }, "invalid output format"},
		{"invalid color mode", func(c *Config) { c.Output.ColorMode = "sometimes" }, "invalid color mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got none", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestSampleConfigsAreValid(t *testing.T) {
	for name, content := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			path := writeConfigFile(t, content)
			if err := NewLoader().loadFromFile(cfg, path); err != nil {
				t.Fatalf("sample config does not parse: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("sample config is not valid: %v", err)
			}
		})
	}
}
