package iqcapture_test

import (
	"testing"

	iqcapture "github.com/visiona/iq-capture"
)

func TestManualGainValidatesRanges(t *testing.T) {
	cases := []struct {
		name            string
		lna, mixer, vga int
	}{
		{"lna too high", 20, 1, 1},
		{"lna negative", -1, 1, 1},
		{"mixer too high", 1, 16, 1},
		{"vga too high", 1, 1, 16},
	}
	for _, tc := range cases {
		if _, err := iqcapture.ManualGain(tc.lna, tc.mixer, tc.vga); err == nil {
			t.Errorf("%s: ManualGain(%d, %d, %d) should fail", tc.name, tc.lna, tc.mixer, tc.vga)
		}
	}

	if _, err := iqcapture.ManualGain(14, 15, 15); err != nil {
		t.Errorf("ManualGain at range maxima failed: %v", err)
	}
}

func TestLinearityPresetResolvesToStageGains(t *testing.T) {
	profile, err := iqcapture.LinearityGain(0)
	if err != nil {
		t.Fatalf("LinearityGain(0) failed: %v", err)
	}
	if got := profile.Mode(); got != iqcapture.GainLinearity {
		t.Errorf("Mode() = %s, want linearity", got)
	}
	lna, mixer, vga := profile.StageGains()
	if lna != 14 || mixer != 12 || vga != 13 {
		t.Errorf("StageGains() = (%d, %d, %d), want (14, 12, 13)", lna, mixer, vga)
	}
}

func TestSensitivityPresetResolvesToStageGains(t *testing.T) {
	profile, err := iqcapture.SensitivityGain(21)
	if err != nil {
		t.Fatalf("SensitivityGain(21) failed: %v", err)
	}
	if got := profile.Mode(); got != iqcapture.GainSensitivity {
		t.Errorf("Mode() = %s, want sensitivity", got)
	}
	lna, mixer, vga := profile.StageGains()
	if lna != 0 || mixer != 0 || vga != 4 {
		t.Errorf("StageGains() = (%d, %d, %d), want (0, 0, 4)", lna, mixer, vga)
	}
}

func TestPresetIndexOutOfRange(t *testing.T) {
	if _, err := iqcapture.LinearityGain(22); err == nil {
		t.Error("LinearityGain(22) should fail")
	}
	if _, err := iqcapture.LinearityGain(-1); err == nil {
		t.Error("LinearityGain(-1) should fail")
	}
	if _, err := iqcapture.SensitivityGain(22); err == nil {
		t.Error("SensitivityGain(22) should fail")
	}
}

func TestManualGainPassesThrough(t *testing.T) {
	profile, err := iqcapture.ManualGain(5, 6, 7)
	if err != nil {
		t.Fatalf("ManualGain failed: %v", err)
	}
	if got := profile.Mode(); got != iqcapture.GainManual {
		t.Errorf("Mode() = %s, want manual", got)
	}
	lna, mixer, vga := profile.StageGains()
	if lna != 5 || mixer != 6 || vga != 7 {
		t.Errorf("StageGains() = (%d, %d, %d), want (5, 6, 7)", lna, mixer, vga)
	}
}
