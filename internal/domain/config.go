package domain

import "time"

// Config represents the application configuration
type Config struct {
	Catalog      CatalogConfig      `mapstructure:"catalog"`
	Download     DownloadConfig     `mapstructure:"download"`
	Remux        RemuxConfig        `mapstructure:"remux"`
	Progress     ProgressConfig     `mapstructure:"progress"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// CatalogConfig contains settings for the YouTube Data API
type CatalogConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"` // empty uses the library default
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir      string `mapstructure:"output_dir"`
	ParallelTracks bool   `mapstructure:"parallel_tracks"`
}

// RemuxConfig contains settings for the external merge tool
type RemuxConfig struct {
	Binary string `mapstructure:"binary"`
}

// ProgressConfig controls terminal progress rendering
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval"` // minimum gap between intermediate updates
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			OutputDir:      ".",
			ParallelTracks: false,
		},
		Remux: RemuxConfig{
			Binary: "ffmpeg",
		},
		Progress: ProgressConfig{
			Interval: 200 * time.Millisecond,
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
