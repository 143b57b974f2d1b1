package config

import (
	"fmt"
	"strings"
)

// Config holds every folio setting.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Spell  SpellConfig  `toml:"spell" yaml:"spell"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig configures the document engine.
type EditorConfig struct {
	// UndoLimit bounds the undo stack.
	UndoLimit int `toml:"undoLimit" yaml:"undoLimit"`

	// MagicLinks turns typed URLs into links.
	MagicLinks bool `toml:"magicLinks" yaml:"magicLinks"`

	// LinkSchemes are the prefixes recognised as URLs.
	LinkSchemes []string `toml:"linkSchemes" yaml:"linkSchemes"`

	// LinkTriggers are the characters that complete a typed URL.
	LinkTriggers string `toml:"linkTriggers" yaml:"linkTriggers"`
}

// SpellConfig configures the spell checker.
type SpellConfig struct {
	Enabled   bool     `toml:"enabled" yaml:"enabled"`
	MinLength int      `toml:"minLength" yaml:"minLength"`
	Words     []string `toml:"words" yaml:"words"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level       string `toml:"level" yaml:"level"`
	Development bool   `toml:"development" yaml:"development"`

	// File receives the log; empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			UndoLimit:    1000,
			MagicLinks:   true,
			LinkSchemes:  []string{"http://", "https://", "www.", "mailto:"},
			LinkTriggers: " )>",
		},
		Spell: SpellConfig{
			Enabled:   true,
			MinLength: 3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Editor.UndoLimit <= 0 {
		return fmt.Errorf("editor.undoLimit must be positive, got %d: %w", c.Editor.UndoLimit, ErrValidationFailed)
	}
	for _, s := range c.Editor.LinkSchemes {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("editor.linkSchemes contains an empty scheme: %w", ErrValidationFailed)
		}
	}
	if c.Spell.MinLength < 1 {
		return fmt.Errorf("spell.minLength must be at least 1, got %d: %w", c.Spell.MinLength, ErrValidationFailed)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrValidationFailed)
	}
	return nil
}
