// Package config holds the plugin's configuration.
//
// Everything that the original deployment derived from ambient process
// environment (reference database roots in particular) is explicit here
// and flows into the components that need it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PluginConfig holds configuration for the qp-shotgun plugin.
type PluginConfig struct {
	// ServerURL is the job-control server base URL.
	ServerURL string `yaml:"server_url"`
	// Token authenticates the plugin against the job-control API.
	Token string `yaml:"token"`

	// StorePath is the SQLite run-history database path
	// (":memory:" for testing, empty disables run recording).
	StorePath string `yaml:"store_path"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json

	Humann2 Humann2Config `yaml:"humann2"`
	Shogun  ShogunConfig  `yaml:"shogun"`
}

// Humann2Config holds the reference databases the humann2 defaults use.
type Humann2Config struct {
	NucleotideDB string `yaml:"nucleotide_db"`
	ProteinDB    string `yaml:"protein_db"`
}

// ShogunConfig holds the shogun database root. Each subdirectory of DBRoot
// is one selectable reference database.
type ShogunConfig struct {
	DBRoot string `yaml:"db_root"`
}

// DefaultPluginConfig returns sensible defaults.
func DefaultPluginConfig() PluginConfig {
	return PluginConfig{
		ServerURL: "https://localhost:21174",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a YAML config file on top of the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (PluginConfig, error) {
	cfg := DefaultPluginConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Write serializes the config to a YAML file, used by "config init" to
// seed a deployment.
func (c PluginConfig) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
