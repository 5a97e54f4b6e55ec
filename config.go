package iqcapture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the locked receiver configuration a controller is built with.
// Immutable after construction: changing any field requires a new
// controller.
type Config struct {
	// SampleRateHz must be SupportedSampleRate (3 MSPS).
	SampleRateHz int `yaml:"sample_rate_hz"`
	// CenterFrequencyHz is the tuner center frequency in Hz.
	CenterFrequencyHz float64 `yaml:"center_frequency_hz"`
	// HighAccuracy selects the high-accuracy conversion mode. Only the
	// high-accuracy combination is supported.
	HighAccuracy bool `yaml:"high_accuracy"`
	// BufferSamples is the ring capacity in IQ pairs; 0 selects
	// DefaultBufferSamples.
	BufferSamples int `yaml:"buffer_samples"`
	// Gain selects the gain profile.
	Gain GainConfig `yaml:"gain"`
}

// GainConfig is the on-disk gain selection: either a preset mode with an
// index, or mode "manual" with explicit per-stage values.
type GainConfig struct {
	// Mode is "linearity", "sensitivity", or "manual".
	Mode string `yaml:"mode"`
	// Index is the preset ladder position (0-21) for preset modes.
	Index int `yaml:"index"`
	// LNA, Mixer, VGA are the per-stage steps for manual mode.
	LNA   int `yaml:"lna"`
	Mixer int `yaml:"mixer"`
	VGA   int `yaml:"vga"`
}

// DefaultConfig returns the supported 3 MSPS high-accuracy configuration
// with the default buffer size and a mid-ladder linearity gain. The center
// frequency is left zero and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		SampleRateHz:  SupportedSampleRate,
		HighAccuracy:  true,
		BufferSamples: DefaultBufferSamples,
		Gain:          GainConfig{Mode: "linearity", Index: 10},
	}
}

// LoadConfig reads a YAML configuration file and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("iq-capture: failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("iq-capture: failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against the allowed combinations.
// Exactly one sample-rate/accuracy-mode combination is supported: 3 MSPS
// in high-accuracy mode.
func (c Config) Validate() error {
	if c.SampleRateHz != SupportedSampleRate {
		return fmt.Errorf("iq-capture: sample rate %d not supported (only %d high-accuracy)",
			c.SampleRateHz, SupportedSampleRate)
	}
	if !c.HighAccuracy {
		return fmt.Errorf("iq-capture: only high-accuracy mode is supported")
	}
	if c.CenterFrequencyHz <= 0 {
		return fmt.Errorf("iq-capture: center_frequency_hz must be positive, got %v", c.CenterFrequencyHz)
	}
	if c.BufferSamples < 0 {
		return fmt.Errorf("iq-capture: buffer_samples must be non-negative, got %d", c.BufferSamples)
	}
	if _, err := c.Gain.profile(); err != nil {
		return err
	}
	return nil
}

// profile resolves the on-disk gain selection into a validated GainProfile.
func (g GainConfig) profile() (GainProfile, error) {
	switch g.Mode {
	case "linearity", "":
		return LinearityGain(g.Index)
	case "sensitivity":
		return SensitivityGain(g.Index)
	case "manual":
		return ManualGain(g.LNA, g.Mixer, g.VGA)
	default:
		return GainProfile{}, fmt.Errorf("iq-capture: unknown gain mode %q", g.Mode)
	}
}

// resolve validates the full configuration and produces the immutable
// StreamConfig handed to the backend, with presets expanded to per-stage
// gains.
func (c Config) resolve() (StreamConfig, error) {
	if err := c.Validate(); err != nil {
		return StreamConfig{}, err
	}
	profile, err := c.Gain.profile()
	if err != nil {
		return StreamConfig{}, err
	}
	lna, mixer, vga := profile.StageGains()
	return StreamConfig{
		SampleRateHz:      c.SampleRateHz,
		CenterFrequencyHz: c.CenterFrequencyHz,
		LNAGain:           lna,
		MixerGain:         mixer,
		VGAGain:           vga,
		HighAccuracy:      c.HighAccuracy,
	}, nil
}
