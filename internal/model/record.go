// Package model defines the canonical, runtime-agnostic record types that
// agentdeck stores and projects into external runtime configurations.
package model

import "time"

// Skill is a reusable agent skill definition.
//
// Name doubles as the artifact filename component, so callers must keep it
// filesystem-safe (see ValidateName). Bookkeeping fields (Tags, Source,
// SourcePath, IsFavorite, timestamps) are never projected into artifacts.
type Skill struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
	Content     string `json:"content" db:"content"`

	// AllowedTools restricts which tools the skill may invoke. Empty means
	// unrestricted and is omitted from projected documents.
	AllowedTools []string `json:"allowed_tools,omitempty"`

	Model                  string `json:"model,omitempty" db:"model"`
	DisableModelInvocation bool   `json:"disable_model_invocation,omitempty" db:"disable_model_invocation"`

	Tags       []string  `json:"tags,omitempty"`
	Source     string    `json:"source" db:"source"`
	SourcePath string    `json:"source_path,omitempty" db:"source_path"`
	IsFavorite bool      `json:"is_favorite,omitempty" db:"is_favorite"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// SubAgent is a delegable sub-agent definition.
//
// Description is required by both external runtimes and is always emitted.
// PermissionMode and Skills only exist in the Claude Code document format.
type SubAgent struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Content     string `json:"content" db:"content"`

	Tools          []string `json:"tools,omitempty"`
	Model          string   `json:"model,omitempty" db:"model"`
	PermissionMode string   `json:"permission_mode,omitempty" db:"permission_mode"`
	Skills         []string `json:"skills,omitempty"`

	Tags       []string  `json:"tags,omitempty"`
	Source     string    `json:"source" db:"source"`
	SourcePath string    `json:"source_path,omitempty" db:"source_path"`
	IsFavorite bool      `json:"is_favorite,omitempty" db:"is_favorite"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
