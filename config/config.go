// Package config loads the backdrop and window settings from a YAML file
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"portfoliobg/backdrop"
)

// File is the top level configuration file
type File struct {
	Backdrop backdrop.Config `yaml:"backdrop"`
	Window   Window          `yaml:"window"`
	Log      Log             `yaml:"log"`
	Profile  Profile         `yaml:"profile"`
}

// Window holds the desktop window settings
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// DocumentViewports is the height of the virtual scrolled document in viewport heights
	DocumentViewports float64 `yaml:"document_viewports"`

	// ScrollStep is the distance in logical pixels of one wheel notch or arrow press
	ScrollStep float64 `yaml:"scroll_step"`

	DebugOverlay bool `yaml:"debug_overlay"`
}

// Log holds the logger settings
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Profile holds the FPS drop profiler settings. An empty Dir disables it.
type Profile struct {
	Dir          string  `yaml:"dir"`
	FPSThreshold float64 `yaml:"fps_threshold"`
}

// Default returns the built-in configuration
func Default() File {
	return File{
		Backdrop: backdrop.DefaultConfig(),
		Window: Window{
			Title:             "Portfolio Background",
			Width:             1024,
			Height:            768,
			DocumentViewports: 4,
			ScrollStep:        60,
		},
		Log: Log{
			Level: "info",
		},
		Profile: Profile{
			FPSThreshold: 45,
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section
func (f File) Validate() error {
	if err := f.Backdrop.Validate(); err != nil {
		return err
	}
	switch {
	case f.Window.Width <= 0 || f.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d",
			backdrop.ErrInvalidConfig, f.Window.Width, f.Window.Height)
	case f.Window.DocumentViewports < 1:
		return fmt.Errorf("%w: document_viewports must be at least 1, got %g",
			backdrop.ErrInvalidConfig, f.Window.DocumentViewports)
	case f.Window.ScrollStep <= 0:
		return fmt.Errorf("%w: scroll_step must be positive, got %g",
			backdrop.ErrInvalidConfig, f.Window.ScrollStep)
	case f.Profile.FPSThreshold < 0:
		return fmt.Errorf("%w: fps_threshold must not be negative, got %g",
			backdrop.ErrInvalidConfig, f.Profile.FPSThreshold)
	}
	if _, err := zapcore.ParseLevel(f.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", backdrop.ErrInvalidConfig, err)
	}
	return nil
}

// NewLogger builds the logger described by the log section
func (l Log) NewLogger() (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()
	if l.Development {
		logConfig = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backdrop.ErrInvalidConfig, err)
	}
	logConfig.Level = zap.NewAtomicLevelAt(level)
	return logConfig.Build()
}
