package iqcapture

import "errors"

// Error kinds surfaced by the controller layer. The ring itself raises no
// errors after construction: overwrite-on-full and short reads are
// documented steady-state behaviors of a live stream, not failures.
var (
	// ErrInvalidConfiguration indicates the locked configuration failed
	// validation at Start. Recoverable: retry with a corrected config.
	ErrInvalidConfiguration = errors.New("iq-capture: invalid configuration")

	// ErrBackendStart wraps a backend-reported start failure. The
	// controller stays Idle, so the caller may retry.
	ErrBackendStart = errors.New("iq-capture: backend start failed")

	// ErrInvalidState indicates an operation was called in a state that
	// forbids it, e.g. Start on a Streaming or Stopped controller.
	ErrInvalidState = errors.New("iq-capture: invalid state")
)
