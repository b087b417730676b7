package model

import (
	"fmt"
	"strings"
)

// Scope determines where a projected artifact is placed: the user-global
// configuration location or a specific project's directory.
type Scope string

const (
	// ScopeGlobal places artifacts under the user's home directory (Claude
	// Code) or the runtime's config root (opencode).
	ScopeGlobal Scope = "global"

	// ScopeProject places artifacts under a given project directory.
	ScopeProject Scope = "project"
)

// IsValid returns true if the scope is recognized.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeGlobal, ScopeProject:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// Description returns a human-readable description of the scope.
func (s Scope) Description() string {
	switch s {
	case ScopeGlobal:
		return "User-global configuration location"
	case ScopeProject:
		return "Per-project configuration location"
	default:
		return "Unknown scope"
	}
}

// AllScopes returns all supported scopes.
func AllScopes() []Scope {
	return []Scope{ScopeGlobal, ScopeProject}
}

// ParseScope converts a string to a Scope.
// Returns an error if the scope is not recognized.
func ParseScope(s string) (Scope, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	scope := Scope(normalized)
	if scope.IsValid() {
		return scope, nil
	}

	switch normalized {
	case "user", "home":
		return ScopeGlobal, nil
	case "local", "repo", "repository":
		return ScopeProject, nil
	default:
		return "", fmt.Errorf("unknown scope %q (valid: global, project)", s)
	}
}
