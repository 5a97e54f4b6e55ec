package iqcapture_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	iqcapture "github.com/visiona/iq-capture"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfigValidatesWithFrequency(t *testing.T) {
	cfg := iqcapture.DefaultConfig()
	cfg.CenterFrequencyHz = 100e6
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with frequency should validate: %v", err)
	}
}

func TestValidateRejectsBadCombinations(t *testing.T) {
	base := iqcapture.DefaultConfig()
	base.CenterFrequencyHz = 100e6

	cases := []struct {
		name   string
		mutate func(*iqcapture.Config)
	}{
		{"unsupported sample rate", func(c *iqcapture.Config) { c.SampleRateHz = 6_000_000 }},
		{"low-accuracy mode", func(c *iqcapture.Config) { c.HighAccuracy = false }},
		{"missing center frequency", func(c *iqcapture.Config) { c.CenterFrequencyHz = 0 }},
		{"negative buffer", func(c *iqcapture.Config) { c.BufferSamples = -1 }},
		{"unknown gain mode", func(c *iqcapture.Config) { c.Gain = iqcapture.GainConfig{Mode: "turbo"} }},
		{"preset out of range", func(c *iqcapture.Config) { c.Gain = iqcapture.GainConfig{Mode: "sensitivity", Index: 30} }},
		{"manual stage out of range", func(c *iqcapture.Config) { c.Gain = iqcapture.GainConfig{Mode: "manual", LNA: 99} }},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", tc.name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, strings.TrimSpace(`
sample_rate_hz: 3000000
center_frequency_hz: 433920000
high_accuracy: true
buffer_samples: 500000
gain:
  mode: sensitivity
  index: 7
`))

	cfg, err := iqcapture.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.CenterFrequencyHz != 433_920_000 {
		t.Errorf("CenterFrequencyHz = %v, want 433920000", cfg.CenterFrequencyHz)
	}
	if cfg.BufferSamples != 500_000 {
		t.Errorf("BufferSamples = %d, want 500000", cfg.BufferSamples)
	}
	if cfg.Gain.Mode != "sensitivity" || cfg.Gain.Index != 7 {
		t.Errorf("Gain = %+v, want sensitivity/7", cfg.Gain)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	// Only the frequency is given; rate, accuracy, buffer, and gain come
	// from the defaults.
	path := writeConfigFile(t, "center_frequency_hz: 100000000\n")

	cfg, err := iqcapture.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SampleRateHz != iqcapture.SupportedSampleRate {
		t.Errorf("SampleRateHz = %d, want default %d", cfg.SampleRateHz, iqcapture.SupportedSampleRate)
	}
	if cfg.BufferSamples != iqcapture.DefaultBufferSamples {
		t.Errorf("BufferSamples = %d, want default %d", cfg.BufferSamples, iqcapture.DefaultBufferSamples)
	}
	if cfg.Gain.Mode != "linearity" || cfg.Gain.Index != 10 {
		t.Errorf("Gain = %+v, want default linearity/10", cfg.Gain)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := writeConfigFile(t, "center_frequency_hz: 100000000\nsample_rate_hz: 250000\n")
	if _, err := iqcapture.LoadConfig(path); err == nil {
		t.Error("LoadConfig should reject an unsupported sample rate")
	}

	if _, err := iqcapture.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig should fail for a missing file")
	}

	bad := writeConfigFile(t, "gain: [not, a, mapping\n")
	if _, err := iqcapture.LoadConfig(bad); err == nil {
		t.Error("LoadConfig should fail for malformed YAML")
	}
}
