package config

import (
	"fmt"
	"net/url"
	"time"
)

// defaultBackendURL is the analysis service host baked in at build time:
//
//	go build -ldflags "-X github.com/yildizm/speedx/internal/config.defaultBackendURL=https://api.example.com"
var defaultBackendURL = "http://localhost:8000"

// DefaultBackendURL returns the build-time backend base URL
func DefaultBackendURL() string {
	return defaultBackendURL
}

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Backend  BackendConfig  `yaml:"backend" json:"backend"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Behavior BehaviorConfig `yaml:"behavior" json:"behavior"`
}

// BackendConfig configures the remote analysis service
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"` // host for every request
	Timeout time.Duration `yaml:"timeout" json:"timeout"`   // 0 disables the client timeout
}

// UIConfig configures the interactive client
type UIConfig struct {
	Theme         string        `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	IndicatorSize int           `yaml:"indicator_size" json:"indicator_size"` // circular indicator diameter
	StrokeWidth   int           `yaml:"stroke_width" json:"stroke_width"`     // circular indicator ring width
	ToastDuration time.Duration `yaml:"toast_duration" json:"toast_duration"` // how long error toasts stay visible
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	LogFile       string `yaml:"log_file" json:"log_file"` // TUI log destination, empty discards
}

// BehaviorConfig toggles request lifecycle behavior
type BehaviorConfig struct {
	// DiscardStale drops responses that arrive for a request that is no
	// longer the most recently issued one. Off by default: the response that
	// resolves last wins.
	DiscardStale bool `yaml:"discard_stale" json:"discard_stale"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Backend: BackendConfig{
			BaseURL: DefaultBackendURL(),
			Timeout: 0,
		},
		UI: UIConfig{
			Theme:         "default",
			IndicatorSize: 120,
			StrokeWidth:   14,
			ToastDuration: time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			LogFile:       "",
		},
		Behavior: BehaviorConfig{
			DiscardStale: false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateBackendConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

func (c *Config) validateBackendConfig() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend.base_url: missing host")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.IndicatorSize < 1 {
		return fmt.Errorf("ui.indicator_size must be greater than 0")
	}
	if c.UI.StrokeWidth < 1 {
		return fmt.Errorf("ui.stroke_width must be greater than 0")
	}
	if c.UI.StrokeWidth >= c.UI.IndicatorSize {
		return fmt.Errorf("ui.stroke_width must be smaller than ui.indicator_size")
	}
	if c.UI.ToastDuration <= 0 {
		return fmt.Errorf("ui.toast_duration must be positive")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
