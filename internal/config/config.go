// Package config provides configuration management for agentdeck.
// It supports YAML or TOML configuration files, an environment override, and
// sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/agentdeck/agentdeck/internal/util"
)

// Config represents the complete agentdeck configuration.
type Config struct {
	// Store configures the canonical record database.
	Store StoreConfig `yaml:"store" toml:"store"`

	// Deploy configures projection defaults.
	Deploy DeployConfig `yaml:"deploy" toml:"deploy"`

	// Output configures display preferences.
	Output OutputConfig `yaml:"output" toml:"output"`
}

// StoreConfig holds record store settings.
type StoreConfig struct {
	// Path is the SQLite database location. Supports ~ expansion.
	Path string `yaml:"path,omitempty" toml:"path,omitempty"`
}

// DeployConfig holds projection defaults used when CLI flags are omitted.
type DeployConfig struct {
	// Target is the default runtime (claude-code, opencode).
	Target string `yaml:"target,omitempty" toml:"target,omitempty"`
	// Scope is the default placement scope (global, project).
	Scope string `yaml:"scope,omitempty" toml:"scope,omitempty"`
	// Project is the default project directory for project scope.
	Project string `yaml:"project,omitempty" toml:"project,omitempty"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never).
	Color string `yaml:"color,omitempty" toml:"color,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Deploy: DeployConfig{
			Target: "claude-code",
			Scope:  "global",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Load reads the configuration from the given path, or from the default
// locations when path is empty: $AGENTDECK_CONFIG, then
// ~/.agentdeck/config.yaml, then ~/.agentdeck/config.toml. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("AGENTDECK_CONFIG")
	}
	if path == "" {
		dir, err := util.AgentdeckDir()
		if err != nil {
			return Default(), nil
		}
		for _, candidate := range []string{
			filepath.Join(dir, "config.yaml"),
			filepath.Join(dir, "config.yml"),
			filepath.Join(dir, "config.toml"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flags/env
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg := Default()
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Deploy.Target == "" {
		c.Deploy.Target = "claude-code"
	}
	if c.Deploy.Scope == "" {
		c.Deploy.Scope = "global"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	c.Store.Path = util.ExpandHome(c.Store.Path)
	c.Deploy.Project = util.ExpandHome(c.Deploy.Project)
}

// StorePath returns the configured database path, or the default location.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := util.AgentdeckDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agentdeck.db"), nil
}
