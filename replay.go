package iqcapture

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"
)

// ReplayConfig configures a file-backed replay of a raw IQ recording.
// The recording format is headerless interleaved float32 (I, Q) values,
// little-endian.
type ReplayConfig struct {
	// Path is the recording file (required, must exist).
	Path string
	// ChunkSamples is the batch size in IQ pairs; 0 selects 131072.
	ChunkSamples int
	// Loop restarts the recording from the beginning at end of file.
	Loop bool
	// Unpaced disables realtime pacing so the whole file is delivered as
	// fast as possible. Pacing derives the inter-batch delay from the
	// stream's sample rate; tests disable it.
	Unpaced bool
}

const defaultChunkSamples = 131_072

// ReplayBackend implements Backend by replaying a stored recording through
// the sample callback at the stream's paced rate, letting the controller
// be exercised without hardware.
type ReplayBackend struct {
	path         string
	chunkSamples int
	loop         bool
	unpaced      bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
	err    error
}

// NewReplayBackend validates the configuration and the recording file
// (fail-fast) and returns an idle backend.
func NewReplayBackend(cfg ReplayConfig) (*ReplayBackend, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("iq-capture: replay path is required")
	}
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("iq-capture: replay file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("iq-capture: replay path %s is a directory", cfg.Path)
	}
	if cfg.ChunkSamples < 0 {
		return nil, fmt.Errorf("iq-capture: chunk_samples must be non-negative, got %d", cfg.ChunkSamples)
	}

	chunk := cfg.ChunkSamples
	if chunk == 0 {
		chunk = defaultChunkSamples
	}

	return &ReplayBackend{
		path:         cfg.Path,
		chunkSamples: chunk,
		loop:         cfg.Loop,
		unpaced:      cfg.Unpaced,
	}, nil
}

// StartStream begins delivering recorded batches to fn. Returns an error
// if already streaming or the sample rate is unusable for pacing.
func (b *ReplayBackend) StartStream(cfg StreamConfig, fn SampleFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return fmt.Errorf("iq-capture: replay already streaming")
	}
	if cfg.SampleRateHz <= 0 {
		return fmt.Errorf("iq-capture: replay needs a positive sample rate, got %d", cfg.SampleRateHz)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})
	b.err = nil

	interval := time.Duration(0)
	if !b.unpaced {
		interval = time.Duration(float64(b.chunkSamples) / float64(cfg.SampleRateHz) * float64(time.Second))
	}

	slog.Info("iq-capture: replay started",
		"path", b.path,
		"chunk_samples", b.chunkSamples,
		"loop", b.loop,
		"batch_interval", interval,
	)

	b.wg.Add(1)
	go b.run(ctx, fn, interval)
	return nil
}

// StopStream halts replay. It returns only after the producer goroutine
// has exited, so no callback invocation happens after StopStream returns.
// Idempotent.
func (b *ReplayBackend) StopStream() error {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	b.wg.Wait()

	slog.Info("iq-capture: replay stopped", "path", b.path)
	return nil
}

// Done is closed when the producer goroutine exits: end of recording
// (without Loop), a read error, or StopStream. Nil before StartStream.
func (b *ReplayBackend) Done() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}

// Err returns the error that ended replay, if any. Valid once Done is
// closed. A clean end of recording and a StopStream both leave it nil.
func (b *ReplayBackend) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *ReplayBackend) run(ctx context.Context, fn SampleFunc, interval time.Duration) {
	defer b.wg.Done()
	defer close(b.done)

	for {
		if err := b.streamFile(ctx, fn, interval); err != nil {
			if err != context.Canceled {
				b.mu.Lock()
				b.err = err
				b.mu.Unlock()
				slog.Error("iq-capture: replay failed", "path", b.path, "error", err)
			}
			return
		}
		if !b.loop || ctx.Err() != nil {
			return
		}
	}
}

// streamFile plays the recording once. Returns nil at end of file,
// context.Canceled on shutdown, or a decode error.
func (b *ReplayBackend) streamFile(ctx context.Context, fn SampleFunc, interval time.Duration) error {
	f, err := os.Open(b.path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, b.chunkSamples*8)
	raw := make([]byte, b.chunkSamples*8)
	batch := make([]float32, b.chunkSamples*2)

	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for {
		if ctx.Err() != nil {
			return context.Canceled
		}

		n, err := io.ReadFull(reader, raw)
		if err == io.EOF {
			return nil
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return err
		}
		if n%8 != 0 {
			return fmt.Errorf("iq-capture: recording contains an incomplete IQ pair")
		}

		values := n / 4
		for i := 0; i < values; i++ {
			batch[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		fn(batch[:values])

		if n < len(raw) {
			// Short read means end of file.
			return nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return context.Canceled
			case <-ticker.C:
			}
		}
	}
}
