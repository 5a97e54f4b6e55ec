package iqcapture

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/visiona/iq-capture/internal/ring"
)

// Controller owns one sample ring and drives one backend through the
// Idle → Streaming → Stopped lifecycle. Stopped is terminal: streaming
// again requires a new controller (the ring's contents survive Stop and
// stay readable).
type Controller struct {
	cfg       Config
	backend   Backend
	ring      *ring.Ring
	sessionID string

	// state guarded by mu. Transitions only Idle→Streaming→Stopped.
	mu    sync.Mutex
	state State

	// cbMu gates the append path. Stop acquires it after the backend has
	// been told to stop, which both waits out an in-flight callback and
	// makes the detached flag visible to any later stray invocation.
	cbMu     sync.Mutex
	detached bool

	// Stats counters (atomic, read without locks).
	batches   uint64
	malformed uint64

	started time.Time
}

// NewController validates cfg, allocates the ring, and returns an Idle
// controller. The ring is created once here and lives for the controller's
// lifetime; it is never resized.
//
// Construction is fail-fast on structurally invalid input (nil backend,
// negative buffer size); the full configuration check against the allowed
// rate/gain combinations runs at Start so a rejected Start can be retried
// with a corrected config on a still-Idle controller.
func NewController(cfg Config, backend Backend) (*Controller, error) {
	if backend == nil {
		return nil, fmt.Errorf("iq-capture: backend is required")
	}

	buffer := cfg.BufferSamples
	if buffer == 0 {
		buffer = DefaultBufferSamples
	}
	r, err := ring.New(buffer)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:       cfg,
		backend:   backend,
		ring:      r,
		sessionID: uuid.New().String(),
		state:     StateIdle,
	}

	slog.Info("iq-capture: controller created",
		"session_id", c.sessionID,
		"buffer_samples", buffer,
		"center_frequency_hz", cfg.CenterFrequencyHz,
	)
	return c, nil
}

// Start validates the locked configuration, registers the sample callback
// with the backend, and starts it.
//
// Errors:
//   - ErrInvalidState if the controller is not Idle (double start, or
//     start after Stop).
//   - ErrInvalidConfiguration if the rate/accuracy combination or gain is
//     invalid; no state transition occurs.
//   - ErrBackendStart wrapping the backend's error if the backend rejects
//     the stream; the controller remains Idle and Start may be retried.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return fmt.Errorf("%w: start from %s", ErrInvalidState, c.state)
	}

	streamCfg, err := c.cfg.resolve()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	if err := c.backend.StartStream(streamCfg, c.handleSamples); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendStart, err)
	}

	c.state = StateStreaming
	c.started = time.Now()

	slog.Info("iq-capture: streaming started",
		"session_id", c.sessionID,
		"sample_rate_hz", streamCfg.SampleRateHz,
		"center_frequency_hz", streamCfg.CenterFrequencyHz,
		"lna_gain", streamCfg.LNAGain,
		"mixer_gain", streamCfg.MixerGain,
		"vga_gain", streamCfg.VGAGain,
		"high_accuracy", streamCfg.HighAccuracy,
	)
	return nil
}

// Stop halts the backend and detaches the sample callback, transitioning
// to Stopped. It is a no-op returning nil unless the controller is
// Streaming (idempotent, like the rest of the shutdown path).
//
// Synchronize-on-detach guarantee: an in-flight callback invocation is
// allowed to finish its append, and no append occurs after Stop returns.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateStreaming {
		slog.Debug("iq-capture: stop ignored", "session_id", c.sessionID, "state", c.state.String())
		return nil
	}

	err := c.backend.StopStream()

	// Wait out any in-flight callback, then latch the gate shut.
	c.cbMu.Lock()
	c.detached = true
	c.cbMu.Unlock()

	c.state = StateStopped

	slog.Info("iq-capture: streaming stopped",
		"session_id", c.sessionID,
		"samples_appended", c.ring.TotalWritten(),
		"samples_overwritten", c.ring.Overwritten(),
		"batches", atomic.LoadUint64(&c.batches),
		"uptime", time.Since(c.started),
	)

	if err != nil {
		return fmt.Errorf("iq-capture: backend stop failed: %w", err)
	}
	return nil
}

// Read returns the most recent min(n, Available()) pairs as interleaved
// float32 values, oldest first. Allowed in any state: after Stop the ring
// still holds the final window (stale but valid).
func (c *Controller) Read(n int) []float32 {
	return c.ring.Read(n)
}

// Available returns the retained pair count at the instant of the call.
func (c *Controller) Available() int {
	return c.ring.Available()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns an operational snapshot.
func (c *Controller) Stats() StreamStats {
	c.mu.Lock()
	state := c.state
	started := c.started
	c.mu.Unlock()

	var uptime time.Duration
	if !started.IsZero() {
		uptime = time.Since(started)
	}

	return StreamStats{
		SessionID:          c.sessionID,
		State:              state,
		SamplesAppended:    c.ring.TotalWritten(),
		SamplesOverwritten: c.ring.Overwritten(),
		BatchesReceived:    atomic.LoadUint64(&c.batches),
		BatchesMalformed:   atomic.LoadUint64(&c.malformed),
		BufferedSamples:    c.ring.Available(),
		BufferCapacity:     c.ring.Capacity(),
		Uptime:             uptime,
	}
}

// handleSamples is the SampleFunc registered with the backend. It runs on
// the backend's producer context; it must stay short and must never block
// on the consumer, which the ring's bounded critical section guarantees.
func (c *Controller) handleSamples(iq []float32) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()

	if c.detached {
		return
	}

	if len(iq)%2 != 0 {
		// An incomplete pair must never reach storage (torn-sample
		// invariant). Drop the whole batch and account for it.
		atomic.AddUint64(&c.malformed, 1)
		slog.Warn("iq-capture: dropping batch with incomplete IQ pair",
			"session_id", c.sessionID,
			"values", len(iq),
		)
		return
	}

	c.ring.Append(iq)
	atomic.AddUint64(&c.batches, 1)
}
