package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 99
count: 12
masking:
  initial: 1
  transfer: 0
  none: 0
verification:
  smt: true
  bound: 50
output:
  path: out.cbor
  format: cbor
scenario:
  maxInitialBase: 30
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 12, cfg.Count)
	assert.Equal(t, MaskingMix{Initial: 1}, cfg.Masking)
	assert.True(t, cfg.Verification.SMT)
	assert.Equal(t, int64(50), cfg.Verification.Bound)
	assert.Equal(t, OutputConfig{Path: "out.cbor", Format: "cbor"}, cfg.Output)
	assert.Equal(t, int64(30), cfg.Scenario.MaxInitialBase)

	// Absent keys keep their defaults.
	assert.Equal(t, DefaultConfig().MaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, DefaultConfig().Scenario.GraphTypes, cfg.Scenario.GraphTypes)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoadConfigValidation(t *testing.T) {
	for name, body := range map[string]string{
		"count":       "count: 0",
		"maxAttempts": "maxAttempts: -1",
		"format":      "output: {format: parquet}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestOpenUnknownFormat(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "out.bin"), "parquet")
	assert.ErrorContains(t, err, `unknown format "parquet"`)
}
