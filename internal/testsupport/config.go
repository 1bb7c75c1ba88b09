package testsupport

import (
	"path/filepath"
	"testing"

	"pwtune/internal/config"
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
	cfgVal.PWConfig.Binary = filepath.Join(base, "bin", "pw-config")
	cfgVal.PWConfig.TimeoutSeconds = 5
	cfgVal.Staging.DraftsPath = filepath.Join(base, "state", "drafts.db")

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

// WithTarget overrides the configured target.
func WithTarget(file, section, subsection string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Target = config.Target{File: file, Section: section, Subsection: subsection}
	}
}

// WithValidateOptions toggles option-list validation for staged edits.
func WithValidateOptions(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Staging.ValidateOptions = enabled
	}
}

// WithStubPWConfig writes a stub pw-config answering with the provided
// fixture and points the config at it.
func WithStubPWConfig(fixture Fixture) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.PWConfig.Binary = WriteStubPWConfig(b.t, filepath.Join(b.baseDir, "bin"), fixture)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Staging.DraftsPath))
}
