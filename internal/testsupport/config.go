package testsupport

import (
	"path/filepath"
	"testing"

	"gstplayer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Player.Pipeline = "audiotestsrc name=audioSrc ! volume name=volumeControl ! fakesink name=sink"
	cfgVal.Watch.Enabled = false
	cfgVal.Watch.DebounceMS = 20

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPipeline overrides the parse-launch description.
func WithPipeline(description string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Player.Pipeline = description
	}
}

// WithProperties sets the inline property table.
func WithProperties(props map[string]any) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Properties = props
	}
}

// WithPropertiesFile writes content to a properties file under the test
// directory, points the config at it, and enables watching.
func WithPropertiesFile(name, content string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, name)
		WriteFile(b.t, path, content)
		b.cfg.Player.PropertiesFile = path
		b.cfg.Watch.Enabled = true
	}
}

// WithJournalDisabled turns off the update journal.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}
