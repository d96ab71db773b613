// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

import "fmt"

// Config contains the operational limits of the engine. Scoring constants are
// fixed and deliberately absent.
type Config struct {
	// DefaultK is used when a caller does not ask for a specific K.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the largest K a caller may request.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultK: 5,
		MaxK:     100,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < 1 {
		return fmt.Errorf("max_k must be positive, got %d", c.MaxK)
	}
	if c.DefaultK > c.MaxK {
		return fmt.Errorf("default_k (%d) cannot exceed max_k (%d)", c.DefaultK, c.MaxK)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
