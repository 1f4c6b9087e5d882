// Package toolconfig loads the resolver binary's own settings — not the
// linted project's configuration (that is econfig.ExtractedConfig), but
// things like where the upward directory probe stops and whether the
// extraction cache is enabled.
//
// Grounded on the teacher's pkg/config/discovery.go (PathDiscovery, env var
// override, ~ expansion) and pkg/config/loader.go (GenericConfigLoader),
// trimmed to the handful of settings this resolver actually needs.
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package toolconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Settings holds the resolver's own configuration.
type Settings struct {
	// CacheEnabled toggles ConfigArray's extraction cache. Disabling it is
	// useful for tests that want to observe recomputation.
	CacheEnabled bool `yaml:"cache_enabled" toml:"cache_enabled"`

	// DefaultEnvVarName is the environment variable Load consults for the
	// path of a settings file, mirroring the teacher's BKPDIR_CONFIG pattern.
	DefaultEnvVarName string `yaml:"env_var_name" toml:"env_var_name"`

	// SearchRoot bounds the upward directory probe; an empty value means
	// "probe to the filesystem root."
	SearchRoot string `yaml:"search_root" toml:"search_root"`
}

// Default returns the built-in defaults.
func Default() Settings {
	return Settings{
		CacheEnabled:      true,
		DefaultEnvVarName: "ECONFIG_SETTINGS",
		SearchRoot:        "",
	}
}

// Load resolves toolconfig settings the way the teacher's PathDiscovery
// resolves bkpdir's own config: consult the environment variable for an
// override path (YAML or TOML, by extension), otherwise return defaults.
func Load() (Settings, error) {
	settings := Default()

	path := os.Getenv(settings.DefaultEnvVarName)
	if path == "" {
		return settings, nil
	}

	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read toolconfig settings %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse toolconfig settings %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse toolconfig settings %s: %w", path, err)
		}
	}

	return settings, nil
}

// expandPath performs ~ expansion, mirroring pkg/config/discovery.go's
// ExpandPath.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
