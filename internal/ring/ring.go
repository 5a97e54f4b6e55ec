// Package ring implements the fixed-capacity IQ sample buffer that sits
// between the backend callback (producer) and the polling consumer.
//
// This package is INTERNAL - clients use the re-exports in the parent
// package. Reason: allows internal refactoring without breaking changes.
package ring

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidCapacity is returned by New for a negative capacity.
var ErrInvalidCapacity = errors.New("iq-capture: invalid ring capacity")

// Ring is a fixed-capacity circular buffer of interleaved float32 IQ pairs
// with overwrite-oldest semantics.
//
// Philosophy (same as the frame path): "Drop samples, never queue."
// A live receiver must never be back-pressured by a slow consumer, so once
// the buffer is full every append overwrites the oldest retained pair. The
// buffer is a most-recent-N view, not a FIFO: Read does not consume, it
// snapshots the newest window relative to the write cursor.
//
// Concurrency contract:
//   - One producer calls Append, one consumer calls Read/Available.
//   - Both may run concurrently and indefinitely.
//   - A single mutex guards storage and cursors; every critical section is
//     bounded by O(request size), so Append never waits on an unbounded
//     reader and no pair is ever observed torn.
type Ring struct {
	mu sync.Mutex

	// storage holds capacity interleaved (I, Q) pairs, indexed modulo
	// capacity in pair units. Guarded by mu.
	storage  []float32
	capacity int

	// totalWritten is the absolute count of pairs ever appended, including
	// pairs that were overwritten before a reader saw them. The write
	// cursor is totalWritten % capacity. Guarded by mu.
	totalWritten uint64

	// overwritten counts retained pairs that were replaced before aging out
	// of the window naturally. Diagnostic only, drops are not errors.
	// Guarded by mu.
	overwritten uint64
}

// New creates a ring holding capacitySamples IQ pairs, zero-initialized.
//
// A capacity of zero is legal: the ring always reports empty and Append
// still accounts samples in TotalWritten. A negative capacity returns
// ErrInvalidCapacity.
func New(capacitySamples int) (*Ring, error) {
	if capacitySamples < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacitySamples)
	}
	return &Ring{
		storage:  make([]float32, capacitySamples*2),
		capacity: capacitySamples,
	}, nil
}

// Append inserts interleaved IQ values and returns the number of pairs
// accepted, which is always the full input pair count: once the ring is
// full new pairs silently overwrite the oldest retained ones, and a single
// call larger than the capacity keeps only its last capacity pairs.
//
// Append never blocks waiting for a reader and never fails. iq must contain
// an even number of values; a trailing unpaired value is ignored so that a
// torn pair can never be stored.
func (r *Ring) Append(iq []float32) int {
	pairs := len(iq) / 2

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capacity > 0 && pairs > 0 {
		src := iq[:pairs*2]
		kept := pairs
		if kept > r.capacity {
			// Oversized burst: only the last capacity pairs are ever
			// readable, skip the doomed prefix instead of copying it.
			src = src[(pairs-r.capacity)*2:]
			kept = r.capacity
		}

		// Count pairs displaced before they aged out of the window.
		retained := r.totalWritten
		if retained > uint64(r.capacity) {
			retained = uint64(r.capacity)
		}
		if free := uint64(r.capacity) - retained; uint64(pairs) > free {
			r.overwritten += uint64(pairs) - free
		}

		// The newest pair must land at (totalWritten+pairs-1) % capacity,
		// so a truncated burst starts writing pairs-kept slots ahead.
		start := int((r.totalWritten + uint64(pairs-kept)) % uint64(r.capacity))
		first := r.capacity - start
		if first > kept {
			first = kept
		}
		copy(r.storage[start*2:], src[:first*2])
		if kept > first {
			copy(r.storage, src[first*2:])
		}
	}

	r.totalWritten += uint64(pairs)
	return pairs
}

// Read returns the most recent min(n, Available()) pairs as interleaved
// float32 values, oldest of the window first. Fewer pairs than requested is
// not an error: live-stream callers check the returned length.
//
// The snapshot is consistent: it is taken under the same mutex as Append,
// so the result is always a contiguous suffix of the append history as of
// some instant during the call.
func (r *Ring) Read(n int) []float32 {
	if n < 0 {
		n = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if avail := r.availableLocked(); n > avail {
		n = avail
	}
	out := make([]float32, n*2)
	if n == 0 {
		return out
	}

	start := int((r.totalWritten - uint64(n)) % uint64(r.capacity))
	first := r.capacity - start
	if first > n {
		first = n
	}
	copy(out, r.storage[start*2:(start+first)*2])
	if n > first {
		copy(out[first*2:], r.storage[:(n-first)*2])
	}
	return out
}

// Available returns the number of currently retained pairs. Purely
// observational: in a live system the value is stale the instant it is
// returned.
func (r *Ring) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.availableLocked()
}

func (r *Ring) availableLocked() int {
	if r.totalWritten < uint64(r.capacity) {
		return int(r.totalWritten)
	}
	return r.capacity
}

// Capacity returns the fixed pair capacity set at construction.
func (r *Ring) Capacity() int {
	return r.capacity
}

// TotalWritten returns the absolute count of pairs ever appended.
func (r *Ring) TotalWritten() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalWritten
}

// Overwritten returns the lifetime count of retained pairs that were
// overwritten by newer data before being read out of the window.
func (r *Ring) Overwritten() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overwritten
}
