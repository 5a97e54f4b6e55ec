package iqcapture

import "fmt"

// Gain step ranges for the Airspy Mini front end.
const (
	maxLNAGain    = 14
	maxMixerGain  = 15
	maxVGAGain    = 15
	maxPresetGain = 21
)

// GainMode identifies how a GainProfile was specified.
type GainMode int

const (
	// GainManual carries explicit per-stage values.
	GainManual GainMode = iota
	// GainLinearity follows the airspy_rx linearity preset ladder.
	GainLinearity
	// GainSensitivity follows the airspy_rx sensitivity preset ladder.
	GainSensitivity
)

// String returns a human-readable mode name.
func (m GainMode) String() string {
	switch m {
	case GainManual:
		return "manual"
	case GainLinearity:
		return "linearity"
	case GainSensitivity:
		return "sensitivity"
	default:
		return "unknown"
	}
}

// Preset ladders from airspy_rx: index 0 is maximum gain, index 21 minimum.
// Each row is (lna, mixer, vga).
var linearityPresets = [22][3]int{
	{14, 12, 13}, {14, 12, 12}, {14, 11, 11}, {13, 9, 11}, {12, 8, 11},
	{10, 7, 11}, {9, 6, 11}, {9, 6, 10}, {8, 5, 10}, {9, 0, 10},
	{8, 0, 10}, {6, 1, 10}, {5, 0, 10}, {3, 0, 10}, {1, 2, 10},
	{0, 2, 10}, {0, 1, 9}, {0, 1, 8}, {0, 1, 7}, {0, 1, 6},
	{0, 0, 5}, {0, 0, 4},
}

var sensitivityPresets = [22][3]int{
	{14, 12, 13}, {14, 12, 12}, {14, 12, 11}, {14, 12, 10}, {14, 11, 9},
	{14, 10, 8}, {14, 10, 7}, {14, 9, 6}, {14, 9, 5}, {13, 8, 5},
	{12, 7, 5}, {12, 4, 5}, {9, 4, 5}, {9, 4, 4}, {8, 3, 4},
	{7, 2, 4}, {6, 2, 4}, {5, 1, 4}, {3, 0, 4}, {2, 0, 4},
	{1, 0, 4}, {0, 0, 4},
}

// GainProfile is a validated gain selection: either explicit per-stage
// values or a single-number linearity/sensitivity preset that resolves to
// per-stage values through the airspy_rx ladders. Profiles are immutable;
// construct a new one to change gain.
type GainProfile struct {
	mode  GainMode
	lna   int
	mixer int
	vga   int
	index int
}

// ManualGain builds a profile from explicit per-stage values.
func ManualGain(lna, mixer, vga int) (GainProfile, error) {
	if lna < 0 || lna > maxLNAGain {
		return GainProfile{}, fmt.Errorf("iq-capture: lna gain %d out of range 0-%d", lna, maxLNAGain)
	}
	if mixer < 0 || mixer > maxMixerGain {
		return GainProfile{}, fmt.Errorf("iq-capture: mixer gain %d out of range 0-%d", mixer, maxMixerGain)
	}
	if vga < 0 || vga > maxVGAGain {
		return GainProfile{}, fmt.Errorf("iq-capture: vga gain %d out of range 0-%d", vga, maxVGAGain)
	}
	return GainProfile{mode: GainManual, lna: lna, mixer: mixer, vga: vga}, nil
}

// LinearityGain builds a profile from the linearity preset ladder (0-21).
func LinearityGain(index int) (GainProfile, error) {
	if index < 0 || index > maxPresetGain {
		return GainProfile{}, fmt.Errorf("iq-capture: linearity gain %d out of range 0-%d", index, maxPresetGain)
	}
	return GainProfile{mode: GainLinearity, index: index}, nil
}

// SensitivityGain builds a profile from the sensitivity preset ladder (0-21).
func SensitivityGain(index int) (GainProfile, error) {
	if index < 0 || index > maxPresetGain {
		return GainProfile{}, fmt.Errorf("iq-capture: sensitivity gain %d out of range 0-%d", index, maxPresetGain)
	}
	return GainProfile{mode: GainSensitivity, index: index}, nil
}

// Mode reports how the profile was specified.
func (g GainProfile) Mode() GainMode {
	return g.mode
}

// StageGains resolves the profile to explicit (lna, mixer, vga) steps.
// Presets are looked up in their ladder; manual profiles return their
// values unchanged.
func (g GainProfile) StageGains() (lna, mixer, vga int) {
	switch g.mode {
	case GainLinearity:
		row := linearityPresets[g.index]
		return row[0], row[1], row[2]
	case GainSensitivity:
		row := sensitivityPresets[g.index]
		return row[0], row[1], row[2]
	default:
		return g.lna, g.mixer, g.vga
	}
}

// String renders the profile for log fields.
func (g GainProfile) String() string {
	if g.mode == GainManual {
		return fmt.Sprintf("manual(lna=%d mixer=%d vga=%d)", g.lna, g.mixer, g.vga)
	}
	return fmt.Sprintf("%s(%d)", g.mode, g.index)
}
