package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitag/benchfetch/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "https://workbench.cisecurity.org/api/vendor/v1", cfg.BaseURL)
	assert.Equal(t, "license.xml", cfg.LicenseFile)
	assert.Equal(t, "securesuite_token.json", cfg.TokenFile)
	assert.Equal(t, []string{"JSON"}, cfg.Formats)
	assert.False(t, cfg.IncludeManual)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchfetch.yaml")
	yaml := `
base_url: http://localhost:8080/api
license_file: /etc/cis/license.json
formats: [SCAP, YAML]
exclude: [windows, azure]
include_manual: true
request_timeout: 2m
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Equal(t, "/etc/cis/license.json", cfg.LicenseFile)
	assert.Equal(t, []string{"SCAP", "YAML"}, cfg.Formats)
	assert.Equal(t, []string{"windows", "azure"}, cfg.Exclude)
	assert.True(t, cfg.IncludeManual)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)

	// Untouched fields keep their defaults.
	assert.Equal(t, "securesuite_token.json", cfg.TokenFile)
	assert.Equal(t, "available_benchmarks.json", cfg.ListFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoFileFallsBackToDefaults(t *testing.T) {
	// Run from an empty directory so the default search finds nothing.
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("formats: [unclosed"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
