package config

import (
	"github.com/dshills/findbar/internal/logging"
)

// Config is the editor configuration.
type Config struct {
	Search  SearchConfig  `toml:"search" yaml:"search"`
	View    ViewConfig    `toml:"view" yaml:"view"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// SearchConfig holds the initial find bar toggles.
type SearchConfig struct {
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`
	WholeWord     bool `toml:"whole_word" yaml:"whole_word"`
	Regex         bool `toml:"regex" yaml:"regex"`
}

// ViewConfig holds document view settings.
type ViewConfig struct {
	// ScrollMargin is the fraction of the view kept clear around the cursor
	// while moving it. Must be in [0, 0.5).
	ScrollMargin float64 `toml:"scroll_margin" yaml:"scroll_margin"`
	// TabWidth is the number of columns a tab expands to.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File is the log file path. Empty disables logging.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			ScrollMargin: 0.1,
			TabWidth:     4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting against its allowed range.
func (c *Config) Validate() error {
	if c.View.ScrollMargin < 0 || c.View.ScrollMargin >= 0.5 {
		return &ValidationError{Path: "view.scroll_margin", Message: "must be in [0, 0.5)", Value: c.View.ScrollMargin}
	}
	if c.View.TabWidth < 1 || c.View.TabWidth > 16 {
		return &ValidationError{Path: "view.tab_width", Message: "must be between 1 and 16", Value: c.View.TabWidth}
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level}
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}
