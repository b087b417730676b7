package model

import (
	"fmt"
	"strings"
)

// Target identifies an external agent runtime that records can be projected
// into. Each target defines its own document schema and directory layout.
type Target string

const (
	// ClaudeCode writes .claude/skills/<name>/SKILL.md and
	// .claude/agents/<name>.md artifacts.
	ClaudeCode Target = "claude-code"

	// OpenCode writes agent/<name>.md artifacts under the opencode config
	// root (global) or <project>/.opencode (project).
	OpenCode Target = "opencode"
)

// IsValid returns true if the target is recognized.
func (t Target) IsValid() bool {
	switch t {
	case ClaudeCode, OpenCode:
		return true
	default:
		return false
	}
}

// String returns the string representation of the target.
func (t Target) String() string {
	return string(t)
}

// Description returns a human-readable description of the target.
func (t Target) Description() string {
	switch t {
	case ClaudeCode:
		return "Claude Code (.claude directory layout)"
	case OpenCode:
		return "opencode (agent directory layout)"
	default:
		return "Unknown target"
	}
}

// AllTargets returns all supported targets.
func AllTargets() []Target {
	return []Target{ClaudeCode, OpenCode}
}

// ParseTarget converts a string to a Target.
// Returns an error if the target is not recognized.
func ParseTarget(s string) (Target, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	target := Target(normalized)
	if target.IsValid() {
		return target, nil
	}

	switch normalized {
	case "claude", "claudecode", "cc":
		return ClaudeCode, nil
	case "oc", "open-code":
		return OpenCode, nil
	default:
		return "", fmt.Errorf("unknown target %q (valid: claude-code, opencode)", s)
	}
}
