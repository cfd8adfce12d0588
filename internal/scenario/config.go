package scenario

import "time"

// Default scenario settings.
const (
	DefaultPreset     = 300 * time.Millisecond
	DefaultScanPeriod = 2 * time.Millisecond
	DefaultTimeout    = 2 * time.Second
	DefaultPulses     = 4
	DefaultSamples    = 500
)

// Config holds configuration for a scenario run.
type Config struct {
	Preset     time.Duration // on-delay of the latch under test
	ScanPeriod time.Duration // engine cycle period
	Timeout    time.Duration // per-wait upper bound
	Pulses     int           // rising edges fed to the parity counter
	Samples    int           // snapshots taken by the consistency check
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Preset:     DefaultPreset,
		ScanPeriod: DefaultScanPeriod,
		Timeout:    DefaultTimeout,
		Pulses:     DefaultPulses,
		Samples:    DefaultSamples,
	}
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Preset <= 0 {
		out.Preset = DefaultPreset
	}
	if out.ScanPeriod <= 0 {
		out.ScanPeriod = DefaultScanPeriod
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Pulses <= 0 {
		out.Pulses = DefaultPulses
	}
	if out.Samples <= 0 {
		out.Samples = DefaultSamples
	}
	return out
}
