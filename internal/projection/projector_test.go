package projection

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentdeck/agentdeck/internal/model"
)

func testProjector(t *testing.T) (*Projector, string, string) {
	t.Helper()
	home := t.TempDir()
	configRoot := filepath.Join(home, ".config", "opencode")
	p := NewWithProviders(
		func() (string, error) { return home, nil },
		func() (string, error) { return configRoot, nil },
	)
	return p, home, configRoot
}

func TestProjectorWriteSkillGlobal(t *testing.T) {
	p, home, _ := testProjector(t)

	if err := p.WriteSkill(model.ClaudeCode, model.ScopeGlobal, "", sampleSkill()); err != nil {
		t.Fatalf("WriteSkill: %v", err)
	}

	path := filepath.Join(home, ".claude", "skills", "test-agent", "SKILL.md")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written at %s: %v", path, err)
	}
	if !strings.Contains(string(content), "allowed-tools: Bash, Glob") {
		t.Errorf("artifact missing tool list:\n%s", content)
	}
}

func TestProjectorWriteAgentOpenCodeGlobal(t *testing.T) {
	p, _, configRoot := testProjector(t)

	if err := p.WriteAgent(model.OpenCode, model.ScopeGlobal, "", sampleAgent()); err != nil {
		t.Fatalf("WriteAgent: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(configRoot, "agent", "code-reviewer.md"))
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(content), "  read: true\n") {
		t.Errorf("opencode document missing nested tool map:\n%s", content)
	}
	if strings.Contains(string(content), "name:") {
		t.Errorf("opencode document must not carry a name line:\n%s", content)
	}
}

// Writing then deleting a project-scope agent leaves the agents directory in
// place without the artifact.
func TestProjectorWriteThenDeleteAgentProject(t *testing.T) {
	p, _, _ := testProjector(t)
	project := t.TempDir()

	a := sampleAgent()
	if err := p.WriteAgent(model.ClaudeCode, model.ScopeProject, project, a); err != nil {
		t.Fatalf("WriteAgent: %v", err)
	}
	if err := p.DeleteAgent(model.ClaudeCode, model.ScopeProject, project, a.Name); err != nil {
		t.Fatalf("DeleteAgent: %v", err)
	}

	if _, err := os.Stat(filepath.Join(project, ".claude", "agents", "code-reviewer.md")); !os.IsNotExist(err) {
		t.Error("artifact still present after delete")
	}
	if _, err := os.Stat(filepath.Join(project, ".claude", "agents")); err != nil {
		t.Errorf("agents directory should survive the delete: %v", err)
	}
}

func TestProjectorDeleteFromEmptyProject(t *testing.T) {
	p, _, _ := testProjector(t)
	project := t.TempDir()

	if err := p.DeleteSkill(model.ClaudeCode, model.ScopeProject, project, "nonexistent"); err != nil {
		t.Fatalf("delete of never-written skill failed: %v", err)
	}

	// No filesystem change either.
	entries, err := os.ReadDir(project)
	if err != nil {
		t.Fatalf("read project dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("delete created %d entries in an empty project", len(entries))
	}
}

func TestProjectorGlobalResolutionFailure(t *testing.T) {
	resolutionErr := errors.New("could not find home directory")
	p := NewWithProviders(
		func() (string, error) { return "", resolutionErr },
		func() (string, error) { return "", resolutionErr },
	)

	ops := map[string]func() error{
		"write skill":  func() error { return p.WriteSkill(model.ClaudeCode, model.ScopeGlobal, "", sampleSkill()) },
		"delete skill": func() error { return p.DeleteSkill(model.OpenCode, model.ScopeGlobal, "", "x") },
		"write agent":  func() error { return p.WriteAgent(model.OpenCode, model.ScopeGlobal, "", sampleAgent()) },
		"delete agent": func() error { return p.DeleteAgent(model.ClaudeCode, model.ScopeGlobal, "", "x") },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, resolutionErr) {
				t.Errorf("expected resolution error to propagate, got %v", err)
			}
		})
	}
}

func TestProjectorRejectsInvalidArguments(t *testing.T) {
	p, _, _ := testProjector(t)

	if err := p.WriteSkill(model.Target("cursor"), model.ScopeGlobal, "", sampleSkill()); err == nil {
		t.Error("expected error for unknown target")
	}
	if err := p.WriteSkill(model.ClaudeCode, model.Scope("system"), "", sampleSkill()); err == nil {
		t.Error("expected error for unknown scope")
	}
	if err := p.WriteSkill(model.ClaudeCode, model.ScopeProject, "", sampleSkill()); err == nil {
		t.Error("expected error for project scope without project path")
	}
}
