// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"subweave/internal/config"
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
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Transcription.APIKey = "test-transcription-key"
	cfgVal.Refinement.APIKey = "test-refinement-key"

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

// WithChunkMinutes overrides the chunk length on the test config.
func WithChunkMinutes(minutes int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Chunking.Minutes = minutes
	}
}

// WithRefinementDisabled turns the LLM correction pass off.
func WithRefinementDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Refinement.Enabled = false
	}
}

// WithDictionaryPath points the test config at a correction file.
func WithDictionaryPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dictionary.Path = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
