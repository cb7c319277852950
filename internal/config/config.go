/*
PURPOSE:
  Defines the configuration structure and loading logic for benchfetch.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the API base URL, license file, output paths,
    and preferred download formats.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - CLI flags override loaded values (handled in internal/cli).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/workbench
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing config file falls back to defaults.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should match the SecureSuite vendor API (v1).

USAGE:
  cfg, err := config.Load("benchfetch.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update Load() defaults.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when the vendor API version changes.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for benchfetch.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	LicenseFile string `yaml:"license_file"`
	TokenFile   string `yaml:"token_file"`
	ListFile    string `yaml:"list_file"`
	OutputDir   string `yaml:"output_dir"`
	// Formats is tried in order; the first one a benchmark advertises wins.
	Formats []string `yaml:"formats"`
	// Exclude is a list of strings to filter benchmark titles (substring match)
	Exclude []string `yaml:"exclude"`
	// IncludeManual also downloads benchmarks whose assessment status is Manual.
	IncludeManual  bool          `yaml:"include_manual"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://workbench.cisecurity.org/api/vendor/v1",
		LicenseFile:    "license.xml",
		TokenFile:      "securesuite_token.json",
		ListFile:       "available_benchmarks.json",
		OutputDir:      ".",
		Formats:        []string{"JSON"},
		Exclude:        nil,
		IncludeManual:  false,
		RequestTimeout: 60 * time.Second,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		// Search for defaults
		defaults := []string{"benchfetch.yaml", "benchfetch.yml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
