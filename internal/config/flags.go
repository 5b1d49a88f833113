package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagSize        = flag.Int("size", 0, "Square window size in pixels (0 = responsive)")
	flagMute        = flag.Bool("mute", false, "Disable sound feedback")
	flagNoVibration = flag.Bool("no-vibration", false, "Disable haptic feedback")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagSize > 0 {
		cfg.Graphics.Width = *flagSize
	}
	if *flagMute {
		cfg.Feedback.Sound = false
	}
	if *flagNoVibration {
		cfg.Feedback.Vibration = false
	}
}
