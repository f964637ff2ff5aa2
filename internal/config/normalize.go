package config

import (
	"fmt"
	"os"
	"strings"
)

var pipelineStateAliases = map[string]string{
	"1": "null",
	"2": "ready",
	"3": "paused",
	"4": "playing",
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizePlayer(); err != nil {
		return err
	}
	c.normalizeWatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayer() error {
	c.Player.DebugTag = strings.TrimSpace(c.Player.DebugTag)
	if c.Player.DebugTag == "" {
		c.Player.DebugTag = defaultDebugTag
	}

	c.Player.Pipeline = strings.TrimSpace(c.Player.Pipeline)
	if c.Player.Pipeline == "" {
		if value, ok := os.LookupEnv("GSTPLAYER_PIPELINE"); ok {
			c.Player.Pipeline = strings.TrimSpace(value)
		}
	}

	state := strings.ToLower(strings.TrimSpace(c.Player.PipelineState))
	if alias, ok := pipelineStateAliases[state]; ok {
		state = alias
	}
	if state == "" {
		state = defaultPipelineState
	}
	c.Player.PipelineState = state

	if strings.TrimSpace(c.Player.PropertiesFile) != "" {
		var err error
		if c.Player.PropertiesFile, err = expandPath(strings.TrimSpace(c.Player.PropertiesFile)); err != nil {
			return fmt.Errorf("player.properties_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeWatch() {
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = defaultWatchDebounceMS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
