// Package config defines service configuration and how it is loaded.
//
// Precedence (low -> high): defaults from New, an optional YAML file, CAMBIOS_* env vars.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Team adds a club, or extra aliases for a known club, to the built-in catalog.
type Team struct {
	ID      string   `koanf:"id" yaml:"id"`
	Display string   `koanf:"display" yaml:"display"`
	Aliases []string `koanf:"aliases" yaml:"aliases"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format" yaml:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" yaml:"addr"`

	// WindowMinutes is the windowed-delta length, 5..30.
	WindowMinutes int `koanf:"window_minutes" yaml:"window_minutes"`
	// SubOrder is out_first or in_first. Empty means the order is assumed and flagged.
	SubOrder string `koanf:"sub_order" yaml:"sub_order"`
	// FocusTeam is the default side whose substitutions are evaluated.
	FocusTeam string `koanf:"focus_team" yaml:"focus_team"`
	// RivalSubstitutions also evaluates the opponent's substitutions.
	RivalSubstitutions bool `koanf:"rival_substitutions" yaml:"rival_substitutions"`
	// DefaultPage overrides the page picked when a request names none. Zero picks
	// page 2 of multi-page reports.
	DefaultPage int `koanf:"default_page" yaml:"default_page"`

	SessionTTLSeconds int   `koanf:"session_ttl_seconds" yaml:"session_ttl_seconds"`
	MaxUploadBytes    int64 `koanf:"max_upload_bytes" yaml:"max_upload_bytes"`

	RateLimitRPS   float64 `koanf:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst" yaml:"rate_limit_burst"`

	BatchWorkers   int `koanf:"batch_workers" yaml:"batch_workers"`
	BatchQueueSize int `koanf:"batch_queue_size" yaml:"batch_queue_size"`

	// Teams extends the built-in catalog.
	Teams []Team `koanf:"teams" yaml:"teams"`
}

// New returns a Config holding the defaults. The context is reserved for sources that
// need it and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		WindowMinutes:     15,
		FocusTeam:         "pumas",
		SessionTTLSeconds: 3600,
		MaxUploadBytes:    20 << 20,
		RateLimitRPS:      20,
		RateLimitBurst:    40,
		BatchWorkers:      runtime.NumCPU(),
		BatchQueueSize:    1024,
	}
}

// Validate reports the first out-of-range value, wrapped with ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WindowMinutes < 5 || c.WindowMinutes > 30:
		return fmt.Errorf("%w: window_minutes must be within 5..30, got %d", ErrInvalidConfig, c.WindowMinutes)
	case c.SubOrder != "" && c.SubOrder != "out_first" && c.SubOrder != "in_first":
		return fmt.Errorf("%w: sub_order must be out_first or in_first, got %q", ErrInvalidConfig, c.SubOrder)
	case c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.DefaultPage < 0:
		return fmt.Errorf("%w: default_page must not be negative", ErrInvalidConfig)
	case c.SessionTTLSeconds <= 0:
		return fmt.Errorf("%w: session_ttl_seconds must be positive", ErrInvalidConfig)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case c.RateLimitRPS < 0 || c.RateLimitBurst < 0:
		return fmt.Errorf("%w: rate limits must not be negative", ErrInvalidConfig)
	case c.BatchWorkers <= 0 || c.BatchQueueSize <= 0:
		return fmt.Errorf("%w: batch_workers and batch_queue_size must be positive", ErrInvalidConfig)
	}
	for i, t := range c.Teams {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: teams[%d] has no id", ErrInvalidConfig, i)
		}
	}
	return nil
}
