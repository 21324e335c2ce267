// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and MOON_* environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidConfig marks a configuration that loaded but failed Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a file or environment layer that could not be read.
	ErrLoadConfig = errors.New("load config failed")
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// IdempotencySize bounds the number of cached responses replayed for Idempotency-Key.
	IdempotencySize int `koanf:"idempotency_size"`

	// ChatAPIKey enables the remote chat responder when set.
	ChatAPIKey string `koanf:"chat_api_key"`

	// ChatModel names the generative model used by the remote responder.
	ChatModel string `koanf:"chat_model"`

	// ChatTimeoutMS bounds a single remote chat call.
	ChatTimeoutMS int `koanf:"chat_timeout_ms"`

	// TracingEnabled turns on OTLP span export.
	TracingEnabled bool `koanf:"tracing_enabled"`

	// OTLPEndpoint is the collector host:port.
	OTLPEndpoint string `koanf:"otlp_endpoint"`

	// OTLPInsecure disables TLS towards the collector.
	OTLPInsecure bool `koanf:"otlp_insecure"`

	// SamplingRate is the fraction of traces sampled, 0..1.
	SamplingRate float64 `koanf:"sampling_rate"`

	// ServiceName identifies the process in traces.
	ServiceName string `koanf:"service_name"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":5000",
		IdempotencySize: 10_000,
		ChatModel:       "gemini-2.0-flash",
		ChatTimeoutMS:   15_000,
		TracingEnabled:  false,
		OTLPEndpoint:    "localhost:4318",
		OTLPInsecure:    true,
		SamplingRate:    1.0,
		ServiceName:     "moonsurvival",
	}
}

// ChatTimeout returns ChatTimeoutMS as a duration.
func (c *Config) ChatTimeout() time.Duration {
	return time.Duration(c.ChatTimeoutMS) * time.Millisecond
}

// ChatRemote reports whether a remote chat responder should be configured.
func (c *Config) ChatRemote() bool {
	return strings.TrimSpace(c.ChatAPIKey) != ""
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	case c.IdempotencySize <= 0:
		return fmt.Errorf("%w: idempotency_size must be positive", ErrInvalidConfig)
	case c.ChatTimeoutMS <= 0:
		return fmt.Errorf("%w: chat_timeout_ms must be positive", ErrInvalidConfig)
	case c.SamplingRate < 0 || c.SamplingRate > 1:
		return fmt.Errorf("%w: sampling_rate %v out of range", ErrInvalidConfig, c.SamplingRate)
	case c.TracingEnabled && c.ServiceName == "":
		return fmt.Errorf("%w: service_name required when tracing is enabled", ErrInvalidConfig)
	}
	return nil
}
