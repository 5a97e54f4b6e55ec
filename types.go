package iqcapture

import "time"

// SupportedSampleRate is the only sample rate the controller accepts, in
// samples per second. The Airspy Mini's 3 MSPS mode is the one
// rate/accuracy combination with improved per-sample precision, and the
// processing chain downstream is calibrated for it.
const SupportedSampleRate = 3_000_000

// DefaultBufferSamples is the default ring capacity in IQ pairs
// (~0.67 s of signal at 3 MSPS).
const DefaultBufferSamples = 2_000_000

// State is the controller lifecycle state.
type State int

const (
	// StateIdle is the initial state: configured but not streaming.
	StateIdle State = iota
	// StateStreaming means the backend callback is feeding the ring.
	StateStreaming
	// StateStopped is terminal: the backend is detached and a new
	// controller is required to stream again.
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StreamConfig is the resolved, immutable configuration handed to a
// backend at StartStream time. Gain is already resolved to per-stage
// values; preset lookup happens before anything reaches the device.
type StreamConfig struct {
	// SampleRateHz is the sample rate in samples per second.
	SampleRateHz int
	// CenterFrequencyHz is the tuner center frequency in Hz.
	CenterFrequencyHz float64
	// LNAGain is the low-noise amplifier gain step (0-14).
	LNAGain int
	// MixerGain is the mixer gain step (0-15).
	MixerGain int
	// VGAGain is the variable gain amplifier step (0-15).
	VGAGain int
	// HighAccuracy selects the high-accuracy conversion mode.
	HighAccuracy bool
}

// StreamStats is a snapshot of controller operational state.
//
// Thread-safe to request from any goroutine; values are consistent with
// each other only as of the instant of the call.
type StreamStats struct {
	// SessionID identifies this controller instance in logs.
	SessionID string
	// State is the lifecycle state at snapshot time.
	State State
	// SamplesAppended is the total count of IQ pairs fed into the ring.
	SamplesAppended uint64
	// SamplesOverwritten counts pairs displaced by newer data before being
	// read. Expected to grow whenever the consumer polls slower than the
	// producer fills; drops are not errors.
	SamplesOverwritten uint64
	// BatchesReceived is the number of backend callback invocations.
	BatchesReceived uint64
	// BatchesMalformed counts callback batches rejected for carrying an
	// incomplete IQ pair.
	BatchesMalformed uint64
	// BufferedSamples is the retained pair count at snapshot time.
	BufferedSamples int
	// BufferCapacity is the fixed ring capacity in pairs.
	BufferCapacity int
	// Uptime is the time since Start, zero before the first Start.
	Uptime time.Duration
}
