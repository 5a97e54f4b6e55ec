// iq-monitor replays a raw IQ recording through the capture controller and
// reports window power and buffer statistics, exercising the full
// backend → ring → consumer path without hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	iqcapture "github.com/visiona/iq-capture"
)

const version = "v0.1.0"

func main() {
	configPath := flag.String("config", "", "YAML capture configuration (optional)")
	input := flag.String("input", "", "Raw interleaved float32 IQ recording (required)")
	frequency := flag.Float64("frequency", 433_920_000, "Center frequency in Hz (when no config file)")
	window := flag.Int("window", 131_072, "Samples per analysis window")
	interval := flag.Int("interval", 1, "Seconds between reports")
	loop := flag.Bool("loop", false, "Loop the recording")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("iq-monitor %s\n", version)
		os.Exit(0)
	}
	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: --input flag is required\n\n")
		fmt.Fprintf(os.Stderr, "Usage example:\n")
		fmt.Fprintf(os.Stderr, "  iq-monitor --input capture.bin --frequency 433920000\n")
		fmt.Fprintf(os.Stderr, "  iq-monitor --input capture.bin --config capture.yaml --loop\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg := iqcapture.DefaultConfig()
	cfg.CenterFrequencyHz = *frequency
	if *configPath != "" {
		loaded, err := iqcapture.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	backend, err := iqcapture.NewReplayBackend(iqcapture.ReplayConfig{
		Path: *input,
		Loop: *loop,
	})
	if err != nil {
		log.Fatalf("Failed to create replay backend: %v", err)
	}

	ctrl, err := iqcapture.NewController(cfg, backend)
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}
	if err := ctrl.Start(); err != nil {
		log.Fatalf("Failed to start streaming: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(*interval) * time.Second)
	defer ticker.Stop()

	slog.Info("iq-monitor: running", "input", *input, "window_samples", *window)

loop:
	for {
		select {
		case <-sigChan:
			slog.Info("iq-monitor: interrupted")
			break loop
		case <-backend.Done():
			if err := backend.Err(); err != nil {
				slog.Error("iq-monitor: replay failed", "error", err)
			} else {
				slog.Info("iq-monitor: end of recording")
			}
			break loop
		case <-ticker.C:
			samples := ctrl.Read(*window)
			stats := ctrl.Stats()
			slog.Info("iq-monitor: window",
				"samples", len(samples)/2,
				"rms_dbfs", fmt.Sprintf("%.1f", rmsDBFS(samples)),
				"buffered", stats.BufferedSamples,
				"appended", stats.SamplesAppended,
				"overwritten", stats.SamplesOverwritten,
			)
		}
	}

	if err := ctrl.Stop(); err != nil {
		slog.Error("iq-monitor: stop failed", "error", err)
	}

	stats := ctrl.Stats()
	fmt.Printf("\n")
	fmt.Printf("Session %s summary:\n", stats.SessionID)
	fmt.Printf("  Samples appended:    %d\n", stats.SamplesAppended)
	fmt.Printf("  Samples overwritten: %d\n", stats.SamplesOverwritten)
	fmt.Printf("  Batches received:    %d\n", stats.BatchesReceived)
	fmt.Printf("  Batches malformed:   %d\n", stats.BatchesMalformed)
	fmt.Printf("  Uptime:              %s\n", stats.Uptime.Round(time.Millisecond))
}

// rmsDBFS computes the window's RMS magnitude in dB relative to a
// full-scale unit-circle IQ pair. Returns -150 for an empty or silent
// window.
func rmsDBFS(iq []float32) float64 {
	pairs := len(iq) / 2
	if pairs == 0 {
		return -150.0
	}
	sum := 0.0
	for i := 0; i < pairs; i++ {
		re := float64(iq[i*2])
		im := float64(iq[i*2+1])
		sum += re*re + im*im
	}
	rms := math.Sqrt(sum / float64(pairs))
	if rms <= 0 {
		return -150.0
	}
	return 20 * math.Log10(rms)
}
