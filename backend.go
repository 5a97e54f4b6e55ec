package iqcapture

// SampleFunc receives one batch of interleaved float32 IQ values from a
// backend. Batches arrive at the backend's own pace.
//
// Contract:
//   - Invocations are sequential, never concurrent with each other.
//   - The slice is only valid for the duration of the call; implementations
//     that retain data must copy it.
type SampleFunc func(iq []float32)

// Backend is the producer capability the controller drives: a hardware
// receiver driver or a file-replay simulation of one. Device enumeration,
// driver setup, and process-wide single-open constraints live behind this
// interface so they never leak into the buffer or controller logic, and so
// the controller can be exercised with test doubles.
//
// Implementations must guarantee:
//   - StartStream begins delivering batches to fn and returns an error if
//     the device rejects the configuration or cannot start.
//   - StopStream ceases producing; it is idempotent and safe to call while
//     a callback invocation is in flight.
type Backend interface {
	StartStream(cfg StreamConfig, fn SampleFunc) error
	StopStream() error
}
