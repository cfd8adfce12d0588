// Package config defines process configuration and its loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text, json or tint.
	LogFormat string `koanf:"log_format"`

	// Addr configures the ops HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ScanPeriodMS is the target scan cycle period.
	ScanPeriodMS int `koanf:"scan_period_ms"`

	// PublishIntervalMS sets how often snapshots are mirrored into metrics.
	PublishIntervalMS int `koanf:"publish_interval_ms"`

	// Program declares the controller's points and rules.
	// An empty program selects the reference configuration.
	Program Program `koanf:"program"`
}

// Program is a declarative controller program.
type Program struct {
	Digital  []PointSpec  `koanf:"digital"`
	Analog   []PointSpec  `koanf:"analog"`
	Timers   []string     `koanf:"timers"`
	Counters []string     `koanf:"counters"`
	Latches  []LatchSpec  `koanf:"latches"`
	Parities []ParitySpec `koanf:"parities"`
	Scales   []ScaleSpec  `koanf:"scales"`
}

// PointSpec declares one I/O point. Kind is "input" or "output".
type PointSpec struct {
	Name    string `koanf:"name"`
	Kind    string `koanf:"kind"`
	Address string `koanf:"address"`
}

// LatchSpec binds an on-delay timed latch.
type LatchSpec struct {
	Input    string `koanf:"input"`
	Output   string `koanf:"output"`
	Timer    string `koanf:"timer"`
	PresetMS int    `koanf:"preset_ms"`
}

// ParitySpec binds an edge-counting parity output.
type ParitySpec struct {
	Input   string `koanf:"input"`
	Output  string `koanf:"output"`
	Counter string `koanf:"counter"`
}

// ScaleSpec binds an analog gain with an upper limit. Gain and Limit are
// pointers so that a missing key is told apart from an explicit zero.
type ScaleSpec struct {
	Input  string   `koanf:"input"`
	Output string   `koanf:"output"`
	Gain   *float64 `koanf:"gain"`
	Limit  *float64 `koanf:"limit"`
}

// Float returns a pointer to v, for ScaleSpec literals.
func Float(v float64) *float64 { return &v }

// Empty reports whether the program declares nothing at all.
func (p *Program) Empty() bool {
	return len(p.Digital) == 0 && len(p.Analog) == 0 &&
		len(p.Timers) == 0 && len(p.Counters) == 0 &&
		len(p.Latches) == 0 && len(p.Parities) == 0 && len(p.Scales) == 0
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		ScanPeriodMS:      10,
		PublishIntervalMS: 100,
	}
}

// ScanPeriod returns ScanPeriodMS as a duration.
func (c *Config) ScanPeriod() time.Duration {
	return time.Duration(c.ScanPeriodMS) * time.Millisecond
}

// PublishInterval returns PublishIntervalMS as a duration.
func (c *Config) PublishInterval() time.Duration {
	return time.Duration(c.PublishIntervalMS) * time.Millisecond
}
