package projection

import (
	"fmt"

	"github.com/agentdeck/agentdeck/internal/model"
	"github.com/agentdeck/agentdeck/internal/util"
)

// Projector composes path resolution, serialization, and the artifact
// writer/deleter into the public write/delete operations per record kind.
//
// Projector holds no state between calls and performs no locking: concurrent
// writes to the same (target, scope, name) are last-writer-wins, and callers
// that need ordering must serialize externally.
type Projector struct {
	home       func() (string, error)
	configRoot func() (string, error)
}

// New returns a Projector using the real home directory and opencode config
// root for global-scope resolution.
func New() *Projector {
	return &Projector{
		home:       util.HomeDir,
		configRoot: util.OpenCodeConfigRoot,
	}
}

// NewWithProviders returns a Projector with custom global-location providers.
// Intended for tests and embedding.
func NewWithProviders(home, configRoot func() (string, error)) *Projector {
	return &Projector{home: home, configRoot: configRoot}
}

// WriteSkill projects a skill to the given target and scope. projectPath is
// only consulted for project scope.
func (p *Projector) WriteSkill(target model.Target, scope model.Scope, projectPath string, s model.Skill) error {
	base, err := p.resolve(target, scope, projectPath)
	if err != nil {
		return err
	}
	return WriteSkillTo(base, target, s)
}

// DeleteSkill removes a skill's projection from the given target and scope.
// Succeeds whether or not the artifact existed.
func (p *Projector) DeleteSkill(target model.Target, scope model.Scope, projectPath, name string) error {
	base, err := p.resolve(target, scope, projectPath)
	if err != nil {
		return err
	}
	return DeleteSkillFrom(base, target, name)
}

// WriteAgent projects a sub-agent to the given target and scope.
func (p *Projector) WriteAgent(target model.Target, scope model.Scope, projectPath string, a model.SubAgent) error {
	base, err := p.resolve(target, scope, projectPath)
	if err != nil {
		return err
	}
	return WriteAgentTo(base, target, a)
}

// DeleteAgent removes a sub-agent's projection from the given target and
// scope. Succeeds whether or not the artifact existed.
func (p *Projector) DeleteAgent(target model.Target, scope model.Scope, projectPath, name string) error {
	base, err := p.resolve(target, scope, projectPath)
	if err != nil {
		return err
	}
	return DeleteAgentFrom(base, target, name)
}

func (p *Projector) resolve(target model.Target, scope model.Scope, projectPath string) (string, error) {
	if !target.IsValid() {
		return "", fmt.Errorf("unknown target %q", target)
	}
	if !scope.IsValid() {
		return "", fmt.Errorf("unknown scope %q", scope)
	}
	if scope == model.ScopeProject && projectPath == "" {
		return "", fmt.Errorf("project scope requires a project path")
	}
	return p.baseDir(target, scope, projectPath)
}
