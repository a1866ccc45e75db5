package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings. A missing config file yields the
// defaults; an unreadable or malformed one is an error so typos don't
// silently fall back.
type Config struct {
	// DataDir is where the app database lives. Empty means
	// ~/.local/share/pdfpresenter.
	DataDir string `yaml:"data_dir"`
	// ThumbnailWidth is the organizer thumbnail width in pixels.
	ThumbnailWidth int `yaml:"thumbnail_width"`
	// ProjectionWidth/Height is the target size projection images are
	// rendered for. Zero means the primary screen size is used.
	ProjectionWidth  int `yaml:"projection_width"`
	ProjectionHeight int `yaml:"projection_height"`
	// TimerTickMs is the talk-timer update interval.
	TimerTickMs int `yaml:"timer_tick_ms"`
	// NotesAutosave is a cron expression for background notes saving.
	// Empty disables autosave.
	NotesAutosave string `yaml:"notes_autosave"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ThumbnailWidth:   200,
		ProjectionWidth:  1920,
		ProjectionHeight: 1080,
		TimerTickMs:      500,
		NotesAutosave:    "@every 2m",
	}
}

// Load reads the YAML config at path, filling unset fields with defaults.
// A missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.ThumbnailWidth <= 0 {
		cfg.ThumbnailWidth = 200
	}
	if cfg.ProjectionWidth <= 0 {
		cfg.ProjectionWidth = 1920
	}
	if cfg.ProjectionHeight <= 0 {
		cfg.ProjectionHeight = 1080
	}
	if cfg.TimerTickMs <= 0 {
		cfg.TimerTickMs = 500
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pdfpresenter", "config.yaml")
}

// ResolveDataDir returns the configured data directory or its default.
func (c *Config) ResolveDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pdfpresenter")
}

// TimerTick returns the timer interval as a duration.
func (c *Config) TimerTick() time.Duration {
	return time.Duration(c.TimerTickMs) * time.Millisecond
}
