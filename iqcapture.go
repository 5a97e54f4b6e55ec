package iqcapture

import "github.com/visiona/iq-capture/internal/ring"

// Ring is re-exported from the internal package so consumers can use the
// sample buffer standalone (e.g. feeding it from their own source).
// See internal/ring for full documentation of the overwrite semantics.
type Ring = ring.Ring

// ErrInvalidCapacity is returned by NewRing for a negative capacity.
var ErrInvalidCapacity = ring.ErrInvalidCapacity

// NewRing creates a standalone IQ sample ring holding capacitySamples
// interleaved (I, Q) pairs. A capacity of zero is legal and always reports
// empty; a negative capacity fails with ErrInvalidCapacity.
func NewRing(capacitySamples int) (*Ring, error) {
	return ring.New(capacitySamples)
}
