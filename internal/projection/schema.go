// Package projection turns canonical Skill and SubAgent records into the
// on-disk configuration documents the external runtimes consume.
//
// Each target runtime has its own document schema: field set, emission order,
// and per-field rendering. Documents are emitted by hand in a fixed order
// rather than through a YAML marshaller, which would sort keys and re-quote
// values; the runtimes are line-oriented readers and the exact shape matters.
package projection

import (
	"strings"

	"github.com/agentdeck/agentdeck/internal/model"
)

// Schema renders canonical records into one target runtime's document format.
type Schema interface {
	// SkillDocument renders a complete SKILL.md-style document.
	SkillDocument(s model.Skill) string

	// AgentDocument renders a complete sub-agent document.
	AgentDocument(a model.SubAgent) string
}

// SchemaFor returns the document schema for a target runtime.
func SchemaFor(target model.Target) Schema {
	if target == model.OpenCode {
		return openCodeSchema{}
	}
	return claudeSchema{}
}

type claudeSchema struct{}

type openCodeSchema struct{}

// skillDocument is shared by both schemas: opencode accepts the Claude Code
// skill frontmatter as-is, only the artifact path layout differs.
//
// Emission order: name, description, allowed-tools, model,
// disable-model-invocation. Optional fields that are empty are omitted
// entirely; the flag is emitted only when set, never as "false".
func skillDocument(s model.Skill) string {
	var b strings.Builder
	b.WriteString("---\n")

	b.WriteString("name: " + s.Name + "\n")
	if s.Description != "" {
		b.WriteString("description: " + s.Description + "\n")
	}
	if len(s.AllowedTools) > 0 {
		b.WriteString("allowed-tools: " + strings.Join(s.AllowedTools, ", ") + "\n")
	}
	if s.Model != "" {
		b.WriteString("model: " + s.Model + "\n")
	}
	if s.DisableModelInvocation {
		b.WriteString("disable-model-invocation: true\n")
	}

	b.WriteString("---\n\n")
	b.WriteString(s.Content)
	return b.String()
}

func (claudeSchema) SkillDocument(s model.Skill) string {
	return skillDocument(s)
}

// AgentDocument renders the Claude Code sub-agent format.
// Emission order: name, description (required), tools, model, permissionMode,
// skills. Tool names keep their original casing.
func (claudeSchema) AgentDocument(a model.SubAgent) string {
	var b strings.Builder
	b.WriteString("---\n")

	b.WriteString("name: " + a.Name + "\n")
	b.WriteString("description: " + a.Description + "\n")
	if len(a.Tools) > 0 {
		b.WriteString("tools: " + strings.Join(a.Tools, ", ") + "\n")
	}
	if a.Model != "" {
		b.WriteString("model: " + a.Model + "\n")
	}
	if a.PermissionMode != "" {
		b.WriteString("permissionMode: " + a.PermissionMode + "\n")
	}
	if len(a.Skills) > 0 {
		b.WriteString("skills: " + strings.Join(a.Skills, ", ") + "\n")
	}

	b.WriteString("---\n\n")
	b.WriteString(a.Content)
	return b.String()
}

func (openCodeSchema) SkillDocument(s model.Skill) string {
	return skillDocument(s)
}

// AgentDocument renders the opencode sub-agent format.
//
// opencode reshapes the same logical fields: the filename is the identity so
// no name is emitted, the description is always double-quoted, and the tool
// list becomes a nested map of lowercased tool names to true. permissionMode
// and skills have no opencode equivalent (opencode's "permission" is an
// object with different semantics) and are dropped rather than translated.
func (openCodeSchema) AgentDocument(a model.SubAgent) string {
	var b strings.Builder
	b.WriteString("---\n")

	b.WriteString("description: \"" + a.Description + "\"\n")
	if a.Model != "" {
		b.WriteString("model: " + a.Model + "\n")
	}
	if len(a.Tools) > 0 {
		b.WriteString("tools:\n")
		for _, tool := range a.Tools {
			b.WriteString("  " + strings.ToLower(tool) + ": true\n")
		}
	}

	b.WriteString("---\n\n")
	b.WriteString(a.Content)
	return b.String()
}
