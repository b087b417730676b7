package projection

import (
	"path/filepath"

	"github.com/agentdeck/agentdeck/internal/model"
)

// Artifact layout constants. Claude Code nests everything under .claude;
// opencode uses a single agent directory for both record kinds.
const (
	claudeDir     = ".claude"
	claudeSkills  = "skills"
	claudeAgents  = "agents"
	skillFilename = "SKILL.md"

	openCodeProjectDir = ".opencode"
	openCodeAgentDir   = "agent"
)

// SkillDir returns the directory that holds a skill's artifact under base.
// For Claude Code this is the per-skill directory that Delete removes
// recursively; for opencode it is the shared agent directory.
func SkillDir(base string, target model.Target, name string) string {
	if target == model.OpenCode {
		return filepath.Join(base, openCodeAgentDir)
	}
	return filepath.Join(base, claudeDir, claudeSkills, name)
}

// SkillPath returns the artifact file path for a skill under base.
func SkillPath(base string, target model.Target, name string) string {
	if target == model.OpenCode {
		return filepath.Join(base, openCodeAgentDir, name+".md")
	}
	return filepath.Join(SkillDir(base, target, name), skillFilename)
}

// AgentPath returns the artifact file path for a sub-agent under base.
func AgentPath(base string, target model.Target, name string) string {
	if target == model.OpenCode {
		return filepath.Join(base, openCodeAgentDir, name+".md")
	}
	return filepath.Join(base, claudeDir, claudeAgents, name+".md")
}

// baseDir maps (target, scope) to the directory that artifact paths hang off.
// Pure: no directory is created, no filesystem is consulted beyond the
// injected global-location providers.
func (p *Projector) baseDir(target model.Target, scope model.Scope, projectPath string) (string, error) {
	if scope == model.ScopeProject {
		if target == model.OpenCode {
			return filepath.Join(projectPath, openCodeProjectDir), nil
		}
		return projectPath, nil
	}
	if target == model.OpenCode {
		return p.configRoot()
	}
	return p.home()
}
