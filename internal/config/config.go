// Package config handles squeeze configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Config holds all application settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Ball       BallConfig       `yaml:"ball"`
	Simulation SimulationConfig `yaml:"simulation"`
	Feedback   FeedbackConfig   `yaml:"feedback"`
	Logging    LoggingConfig    `yaml:"logging"`

	path string // file Load read, or "" when none was found
}

// GraphicsConfig holds display settings. The window is square; a zero
// width picks a responsive size from the display width.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// BallConfig holds the sphere geometry and material.
type BallConfig struct {
	Radius         float32 `yaml:"radius"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
	Color          string  `yaml:"color"`
	Opacity        float32 `yaml:"opacity"`
}

// SimulationConfig holds the deformation engine tunables.
type SimulationConfig struct {
	Smoothing        float32 `yaml:"smoothing"`
	Depth            float32 `yaml:"depth"`
	FadeRate         float32 `yaml:"fade_rate"`
	RadiusFadeRate   float32 `yaml:"radius_fade_rate"`
	MinIntensity     float32 `yaml:"min_intensity"`
	MaxDeformations  int     `yaml:"max_deformations"`
	TrimDeformations int     `yaml:"trim_deformations"`
	IdleHalfRate     bool    `yaml:"idle_half_rate"`
}

// FeedbackConfig holds the audio and haptic preferences.
type FeedbackConfig struct {
	Sound     bool    `yaml:"sound"`
	Vibration bool    `yaml:"vibration"`
	Volume    float64 `yaml:"volume"`
	Persist   bool    `yaml:"persist"` // write toggles back to the config dir
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      0,
			Fullscreen: false,
			VSync:      true,
		},
		Ball: BallConfig{
			Radius:         2.0,
			WidthSegments:  96,
			HeightSegments: 48,
			Color:          "#6bb6ff",
			Opacity:        0.95,
		},
		Simulation: SimulationConfig{
			Smoothing:        0.05,
			Depth:            0.15,
			FadeRate:         0.98,
			RadiusFadeRate:   0.999,
			MinIntensity:     0.005,
			MaxDeformations:  30,
			TrimDeformations: 25,
			IdleHalfRate:     true,
		},
		Feedback: FeedbackConfig{
			Sound:     true,
			Vibration: true,
			Volume:    1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the loaded values can drive the simulation.
func (c *Config) Validate() error {
	var errs []error

	if c.Ball.Radius <= 0 {
		errs = append(errs, fmt.Errorf("ball.radius must be positive, got %v", c.Ball.Radius))
	}
	if c.Ball.WidthSegments < 3 || c.Ball.HeightSegments < 2 {
		errs = append(errs, fmt.Errorf("ball segments too small: %dx%d", c.Ball.WidthSegments, c.Ball.HeightSegments))
	}
	if _, err := c.Ball.RGB(); err != nil {
		errs = append(errs, err)
	}

	s := c.Simulation
	if s.Smoothing <= 0 || s.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("simulation.smoothing must be in (0,1], got %v", s.Smoothing))
	}
	if s.FadeRate <= 0 || s.FadeRate >= 1 {
		errs = append(errs, fmt.Errorf("simulation.fade_rate must be in (0,1), got %v", s.FadeRate))
	}
	if s.RadiusFadeRate <= 0 || s.RadiusFadeRate > 1 {
		errs = append(errs, fmt.Errorf("simulation.radius_fade_rate must be in (0,1], got %v", s.RadiusFadeRate))
	}
	if s.Depth <= 0 {
		errs = append(errs, fmt.Errorf("simulation.depth must be positive, got %v", s.Depth))
	}
	if s.MaxDeformations < 1 {
		errs = append(errs, fmt.Errorf("simulation.max_deformations must be at least 1, got %d", s.MaxDeformations))
	}
	if s.MinIntensity <= 0 {
		errs = append(errs, fmt.Errorf("simulation.min_intensity must be positive, got %v", s.MinIntensity))
	}
	if s.TrimDeformations < 0 || s.TrimDeformations > s.MaxDeformations {
		errs = append(errs, fmt.Errorf("simulation.trim_deformations (%d) must be within [0, max_deformations=%d]",
			s.TrimDeformations, s.MaxDeformations))
	}

	if c.Feedback.Volume < 0 || c.Feedback.Volume > 1 {
		errs = append(errs, fmt.Errorf("feedback.volume must be in [0,1], got %v", c.Feedback.Volume))
	}

	return errors.Join(errs...)
}

// RGB parses the "#rrggbb" ball color into normalized components.
func (b BallConfig) RGB() ([3]float32, error) {
	hex := strings.TrimPrefix(b.Color, "#")
	if len(hex) != 6 {
		return [3]float32{}, fmt.Errorf("ball.color %q is not #rrggbb", b.Color)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("ball.color %q: %w", b.Color, err)
	}
	return [3]float32{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
