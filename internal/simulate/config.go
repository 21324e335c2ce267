// Package simulate drives a running server with synthetic participants and
// checks its answers against a local evaluator.
package simulate

import (
	"errors"
	"time"
)

// Simulation errors.
var (
	ErrUnhealthy   = errors.New("service is not healthy")
	ErrMismatch    = errors.New("server result differs from local result")
	ErrBadResponse = errors.New("unexpected response")
	ErrInvalid     = errors.New("invalid simulation config")
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Participants int           // Number of synthetic participants
	Swaps        int           // Random swaps applied to each participant's order
	Workers      int           // Concurrent /evaluate submitters
	Seed         int64         // Seed for orders, names and keys
	Timeout      time.Duration // HTTP request timeout
	OutputFile   string        // Optional JSON dump of the generated submissions
}

// DefaultConfig returns the settings used when flags are not given.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:5000",
		Participants: 5,
		Swaps:        6,
		Workers:      4,
		Seed:         1,
		Timeout:      10 * time.Second,
	}
}

// Validate reports whether the config can drive a run.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return errors.Join(ErrInvalid, errors.New("base url is required"))
	case c.Participants < 1:
		return errors.Join(ErrInvalid, errors.New("participants must be positive"))
	case c.Swaps < 0:
		return errors.Join(ErrInvalid, errors.New("swaps must not be negative"))
	case c.Workers < 1:
		return errors.Join(ErrInvalid, errors.New("workers must be positive"))
	case c.Timeout <= 0:
		return errors.Join(ErrInvalid, errors.New("timeout must be positive"))
	}
	return nil
}

// Stats holds run statistics.
type Stats struct {
	Participants        int
	EvaluationsSent     int
	EvaluationsVerified int
	EvaluationsFailed   int
	TeamScore           int
	TeamVerified        bool
	ReplayVerified      bool
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
