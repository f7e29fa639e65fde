// Package config provides configuration constants for e2e scenarios.
package config

import "time"

// Default timeouts.
const (
	DefaultStageTimeout  = 30 * time.Second
	DefaultGlobalTimeout = 5 * time.Minute
)

// DefaultFixturesDir is the fixtures location relative to the
// repository root, where the runner is normally started.
const DefaultFixturesDir = "test/e2e/fixtures"

// Fixture file names.
const (
	ColorsFixture = "colors.json"
	OpaqueFixture = "opaque.json"
)

// Config holds the e2e scenario configuration.
type Config struct {
	FixturesDir  string        `json:"fixtures_dir"`
	StageTimeout time.Duration `json:"stage_timeout"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		FixturesDir:  DefaultFixturesDir,
		StageTimeout: DefaultStageTimeout,
	}
}
