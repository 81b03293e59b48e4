// Command snapshot renders backdrop frames headlessly and writes them as PNG files
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"portfoliobg/backdrop"
	"portfoliobg/config"
	"portfoliobg/headless"
	"portfoliobg/raster"
)

// options are the command line settings of one snapshot run
type options struct {
	width, height float64
	dpr           float64
	frames        int
	interval      time.Duration
	scroll        float64 // 0-1 share of the scrollable document
	out           string
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	width := flag.Float64("width", 1280, "Viewport width in logical pixels")
	height := flag.Float64("height", 800, "Viewport height in logical pixels")
	dpr := flag.Float64("dpr", 1, "Device pixel ratio")
	frames := flag.Int("frames", 1, "Number of frames to render")
	interval := flag.Duration("interval", 500*time.Millisecond, "Time between rendered frames")
	scroll := flag.Float64("scroll", 0, "Scroll position as a share of the scrollable document (0-1)")
	out := flag.String("out", "snapshots", "Output directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	opts := options{
		width:    *width,
		height:   *height,
		dpr:      *dpr,
		frames:   *frames,
		interval: *interval,
		scroll:   *scroll,
		out:      *out,
	}
	if err := run(cfg, opts, logger); err != nil {
		logger.Fatal("Snapshot failed", zap.Error(err))
	}
}

func run(cfg config.File, opts options, logger *zap.Logger) error {
	if opts.frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", opts.frames)
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Snapshots show the settled position
	cfg.Backdrop.ScrollDamping = 0

	component, err := backdrop.NewComponent(cfg.Backdrop, logger)
	if err != nil {
		return err
	}

	canvas := raster.New()
	host := headless.NewHost(backdrop.Viewport{
		Width:            opts.width,
		Height:           opts.height,
		DevicePixelRatio: opts.dpr,
	}, canvas)
	if err := component.Mount(host); err != nil {
		return err
	}
	defer component.Unmount()

	docHeight := opts.height * cfg.Window.DocumentViewports
	host.ScrollTo(opts.scroll*(docHeight-opts.height), docHeight)

	for i := 0; i < opts.frames; i++ {
		host.Advance(time.Duration(i) * opts.interval)

		path := filepath.Join(opts.out, fmt.Sprintf("frame-%03d.png", i))
		if err := writePNG(path, canvas); err != nil {
			return err
		}
		logger.Info("Frame written", zap.String("path", path), zap.Duration("timestamp", time.Duration(i)*opts.interval))
	}

	st := component.Stats()
	logger.Info("Snapshot complete",
		zap.Int("particles", st.Particles),
		zap.Uint64("frames", st.Frames),
		zap.Float64("progress", st.Progress),
	)
	return nil
}

func writePNG(path string, canvas *raster.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, canvas.Composite(backdrop.BackgroundColor)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
