package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"gstplayer/internal/propdiff"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Player contains the props forwarded to the native player.
type Player struct {
	DebugTag string `toml:"debug_tag"`
	// Pipeline is a gst-launch style description, e.g.
	// "audiotestsrc name=audioSrc ! volume name=volumeControl ! autoaudiosink".
	Pipeline string `toml:"pipeline"`
	// PipelineState is one of null, ready, paused, playing (or 1-4).
	PipelineState string  `toml:"pipeline_state"`
	FadeSpeedMS   int     `toml:"fade_speed_ms"`
	FadeOpacity   float64 `toml:"fade_opacity"`
	// PropertiesFile optionally points at a TOML or JSON property tree that
	// replaces [properties] and is watched for edits.
	PropertiesFile string `toml:"properties_file"`
}

// Watch contains configuration for reloading the properties file.
type Watch struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms"`
}

// Journal contains configuration for the forwarded-update journal.
type Journal struct {
	Enabled   bool `toml:"enabled"`
	Retention int  `toml:"retention"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for gstplayer.
//
// Configuration sections:
//   - Paths: state (journal, lock file) and log directories
//   - Player: pipeline description, desired state, overlay fade
//   - Properties: initial element property tree
//   - Watch: properties file reload
//   - Journal: SQLite record of forwarded updates
//   - Logging: log format and level
type Config struct {
	Paths      Paths          `toml:"paths"`
	Player     Player         `toml:"player"`
	Properties map[string]any `toml:"properties"`
	Watch      Watch          `toml:"watch"`
	Journal    Journal        `toml:"journal"`
	Logging    Logging        `toml:"logging"`
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the configuration at path, or the first of the per-user file
// and ./gstplayer.toml that exists when path is empty. It returns the
// normalized config, the file it resolved to, and whether that file existed.
// A missing file yields defaults.
func Load(path string) (*Config, string, bool, error) {
	source, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	data, err := os.ReadFile(source)
	exists := err == nil
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, "", false, fmt.Errorf("read config %s: %w", source, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", source, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, source, exists, nil
}

// locate picks the config file to read. An explicit path wins even when it
// does not exist.
func locate(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return expandPath(path)
	}
	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", err
	}
	localPath, err := expandPath("gstplayer.toml")
	if err != nil {
		return "", err
	}
	for _, candidate := range []string{userPath, localPath} {
		if info, statErr := os.Stat(candidate); statErr == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return userPath, nil
}

// EnsureDirectories creates the state and log directories and checks that
// they are usable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
		if err := checkDirAccess(dir); err != nil {
			return err
		}
	}
	return nil
}

// JournalPath returns the SQLite journal location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// LockPath returns the lock file guarding a running player.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "gstplayer.lock")
}

// FadeSpeed returns the overlay fade duration.
func (c *Config) FadeSpeed() time.Duration {
	return time.Duration(c.Player.FadeSpeedMS) * time.Millisecond
}

// WatchDebounce returns the quiet period applied to properties file events.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// InitialProperties returns the inline [properties] table as a tree.
func (c *Config) InitialProperties() propdiff.Tree {
	return propdiff.FromMap(c.Properties)
}

// RequirePipeline reports an error when no pipeline description is configured.
func (c *Config) RequirePipeline() error {
	if strings.TrimSpace(c.Player.Pipeline) == "" {
		return fmt.Errorf("player.pipeline is required. Set GSTPLAYER_PIPELINE or edit the config file (create with 'gstplayer config init')")
	}
	return nil
}

// ExpandPath resolves a leading "~" to the home directory and returns an
// absolute, cleaned path. The empty string is returned unchanged.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimLeft(value[1:], `/\`))
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", value, err)
	}
	return abs, nil
}

// ErrConfigExists is returned by CreateSample when the target exists and
// overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
