package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayer(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePlayer() error {
	switch c.Player.PipelineState {
	case "null", "ready", "paused", "playing":
	default:
		return fmt.Errorf("player.pipeline_state must be one of null, ready, paused, playing (got %q)", c.Player.PipelineState)
	}
	if c.Player.FadeSpeedMS < 0 {
		return errors.New("player.fade_speed_ms must be >= 0")
	}
	if c.Player.FadeOpacity < 0 || c.Player.FadeOpacity > 1 {
		return errors.New("player.fade_opacity must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.Enabled && strings.TrimSpace(c.Player.PropertiesFile) == "" {
		// Nothing to watch; the inline [properties] table is static.
		c.Watch.Enabled = false
	}
	if c.Watch.DebounceMS <= 0 {
		return errors.New("watch.debounce_ms must be positive")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.Retention < 0 {
		return errors.New("journal.retention must be >= 0")
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set when journal.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
