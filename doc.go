// Package iqcapture buffers a continuous stream of interleaved float32
// IQ sample pairs from an Airspy Mini class receiver (or a file-backed
// simulation of one) and hands bounded, contiguous windows of the most
// recent samples to a polling consumer while the producer keeps running.
//
// # Philosophy
//
// "Drop samples, never queue. The producer is never back-pressured."
//
// A radio front end produces samples on its own clock. If the consumer
// falls behind, the only sane policy for a live stream is to overwrite the
// oldest data: stale samples are worthless, and blocking the device
// callback loses more data than it saves. The ring therefore appends
// without ever waiting for a reader, and reads return the newest window
// available rather than failing when fewer samples than requested exist.
//
// # Architecture
//
// Two components:
//
//	Backend (device or replay) → Controller → Ring → consumer polls Read()
//	        callback batches      Idle→Streaming→Stopped   most-recent-N window
//
// Ring is the concurrency core: a fixed-capacity circular buffer of IQ
// pairs guarded by a single mutex, with overwrite-oldest semantics and
// consistent snapshot reads (no torn pairs, no half-stale windows).
//
// Controller is a thin state machine that validates the locked
// configuration, wires the backend's callback to Ring.Append, and detaches
// it again on Stop with the guarantee that no append happens after Stop
// returns.
//
// # Basic Usage
//
// Producer side wiring and consumer polling:
//
//	cfg := iqcapture.DefaultConfig()
//	cfg.CenterFrequencyHz = 433_920_000
//
//	backend, _ := iqcapture.NewReplayBackend(iqcapture.ReplayConfig{Path: "iq.bin"})
//	ctrl, err := iqcapture.NewController(cfg, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctrl.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer ctrl.Stop()
//
//	for {
//	    window := ctrl.Read(131_072) // newest <=131072 pairs, oldest first
//	    process(window)
//	    time.Sleep(20 * time.Millisecond)
//	}
//
// # Drop Semantics
//
// Overwrites are EXPECTED and HEALTHY: they mean the receiver outpaced the
// consumer, which is the steady state of any live capture. They are
// reported through Stats().SamplesOverwritten for diagnostics, never as
// errors. A Read returning fewer pairs than requested is likewise normal;
// callers check the returned length.
//
// # Thread Safety
//
// One producer (the backend callback) and one consumer are supported.
// Append, Read, Available and Stats are safe under true parallel
// execution; Stop may be called concurrently with an in-flight callback
// and returns only after that invocation's append has completed.
package iqcapture
