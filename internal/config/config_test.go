package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
store:
  path: /tmp/custom.db
deploy:
  target: opencode
  scope: project
  project: /work/proj
output:
  color: never
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Path != "/tmp/custom.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Deploy.Target != "opencode" || cfg.Deploy.Scope != "project" {
		t.Errorf("Deploy = %+v", cfg.Deploy)
	}
	if cfg.Output.Color != "never" {
		t.Errorf("Output.Color = %q", cfg.Output.Color)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[deploy]
target = "opencode"

[output]
color = "always"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Deploy.Target != "opencode" {
		t.Errorf("Deploy.Target = %q", cfg.Deploy.Target)
	}
	if cfg.Output.Color != "always" {
		t.Errorf("Output.Color = %q", cfg.Output.Color)
	}
	// Unset fields keep defaults.
	if cfg.Deploy.Scope != "global" {
		t.Errorf("Deploy.Scope = %q, want default global", cfg.Deploy.Scope)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("AGENTDECK_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Deploy.Target != "claude-code" || cfg.Deploy.Scope != "global" {
		t.Errorf("defaults not applied: %+v", cfg.Deploy)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("Output.Color = %q, want auto", cfg.Output.Color)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "deploy:\n  target: opencode\n")
	t.Setenv("AGENTDECK_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Deploy.Target != "opencode" {
		t.Errorf("env override not honored: %q", cfg.Deploy.Target)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", "store: [broken")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestStorePathDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	got, err := cfg.StorePath()
	if err != nil {
		t.Fatalf("StorePath: %v", err)
	}
	want := filepath.Join(home, ".agentdeck", "agentdeck.db")
	if got != want {
		t.Errorf("StorePath() = %q, want %q", got, want)
	}
}
