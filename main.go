package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"portfoliobg/backdrop"
	"portfoliobg/config"
	"portfoliobg/ebitenhost"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (or set BACKDROP_CONFIG env var)")
	desktop := flag.Int("desktop", 0, "Override the particle count above the mobile breakpoint")
	mobile := flag.Int("mobile", 0, "Override the particle count at or below the mobile breakpoint")
	seed := flag.Uint64("seed", 0, "Seed for reproducible particle fields (0 = random)")
	debug := flag.Bool("debug", false, "Show the debug overlay and log at debug level")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = os.Getenv("BACKDROP_CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	if *desktop > 0 {
		cfg.Backdrop.DesktopCount = *desktop
	}
	if *mobile > 0 {
		cfg.Backdrop.MobileCount = *mobile
	}
	if *seed != 0 {
		cfg.Backdrop.Seed = *seed
	}
	if *debug {
		cfg.Window.DebugOverlay = true
		cfg.Log.Level = "debug"
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := logger.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
			fmt.Fprintf(os.Stderr, "Failed to sync logger: %v\n", err)
		}
	}()

	component, err := backdrop.NewComponent(cfg.Backdrop, logger)
	if err != nil {
		logger.Fatal("Invalid backdrop config", zap.Error(err))
	}

	host, err := ebitenhost.New(ebitenhost.Options{
		DocumentViewports: cfg.Window.DocumentViewports,
		ScrollStep:        cfg.Window.ScrollStep,
		DebugOverlay:      cfg.Window.DebugOverlay,
		ProfileDir:        cfg.Profile.Dir,
		FPSThreshold:      cfg.Profile.FPSThreshold,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create window host", zap.Error(err))
	}
	host.Attach(component)
	defer host.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(host); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("Game loop stopped", zap.Error(err))
	}
}
