package projection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentdeck/agentdeck/internal/model"
)

func TestWriteSkillToClaudeLayout(t *testing.T) {
	dir := t.TempDir()
	s := sampleSkill()

	if err := WriteSkillTo(dir, model.ClaudeCode, s); err != nil {
		t.Fatalf("WriteSkillTo: %v", err)
	}

	path := filepath.Join(dir, ".claude", "skills", "test-agent", "SKILL.md")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written at %s: %v", path, err)
	}
	if !strings.Contains(string(content), "name: test-agent") {
		t.Errorf("artifact missing frontmatter:\n%s", content)
	}
	if !strings.Contains(string(content), "You are a helpful assistant.") {
		t.Errorf("artifact missing body:\n%s", content)
	}
}

func TestWriteSkillToOpenCodeLayout(t *testing.T) {
	dir := t.TempDir()
	s := sampleSkill()

	if err := WriteSkillTo(dir, model.OpenCode, s); err != nil {
		t.Fatalf("WriteSkillTo: %v", err)
	}

	// opencode stores skills as flat files in the agent directory.
	path := filepath.Join(dir, "agent", "test-agent.md")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("artifact not written at %s: %v", path, err)
	}
}

func TestWriteAgentToLayouts(t *testing.T) {
	tests := map[string]struct {
		target model.Target
		want   []string
	}{
		"claude-code": {target: model.ClaudeCode, want: []string{".claude", "agents", "code-reviewer.md"}},
		"opencode":    {target: model.OpenCode, want: []string{"agent", "code-reviewer.md"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := WriteAgentTo(dir, tt.target, sampleAgent()); err != nil {
				t.Fatalf("WriteAgentTo: %v", err)
			}
			path := filepath.Join(append([]string{dir}, tt.want...)...)
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("artifact not written at %s: %v", path, err)
			}
		})
	}
}

// Writing the same record twice must leave the file identical to a single
// write: a full replace, never an append or merge.
func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := sampleSkill()

	if err := WriteSkillTo(dir, model.ClaudeCode, s); err != nil {
		t.Fatalf("first write: %v", err)
	}
	path := SkillPath(dir, model.ClaudeCode, s.Name)
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after first write: %v", err)
	}

	if err := WriteSkillTo(dir, model.ClaudeCode, s); err != nil {
		t.Fatalf("second write: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after second write: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("repeated write changed artifact:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

// A rewrite fully replaces prior content, including fields the new record no
// longer carries.
func TestWriteReplacesStaleContent(t *testing.T) {
	dir := t.TempDir()

	s := sampleSkill()
	if err := WriteSkillTo(dir, model.ClaudeCode, s); err != nil {
		t.Fatalf("first write: %v", err)
	}

	s.Model = ""
	s.Content = "Updated body."
	if err := WriteSkillTo(dir, model.ClaudeCode, s); err != nil {
		t.Fatalf("second write: %v", err)
	}

	content, err := os.ReadFile(SkillPath(dir, model.ClaudeCode, s.Name))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(content), "model:") {
		t.Errorf("stale model line survived rewrite:\n%s", content)
	}
	if !strings.Contains(string(content), "Updated body.") {
		t.Errorf("rewrite did not replace body:\n%s", content)
	}
}

func TestDeleteSkillRemovesDirectory(t *testing.T) {
	dir := t.TempDir()
	s := sampleSkill()

	if err := WriteSkillTo(dir, model.ClaudeCode, s); err != nil {
		t.Fatalf("write: %v", err)
	}
	skillDir := filepath.Join(dir, ".claude", "skills", "test-agent")
	if _, err := os.Stat(skillDir); err != nil {
		t.Fatalf("skill directory missing before delete: %v", err)
	}

	if err := DeleteSkillFrom(dir, model.ClaudeCode, s.Name); err != nil {
		t.Fatalf("DeleteSkillFrom: %v", err)
	}
	if _, err := os.Stat(skillDir); !os.IsNotExist(err) {
		t.Errorf("skill directory still present after delete")
	}
}

func TestDeleteAgentLeavesSiblings(t *testing.T) {
	dir := t.TempDir()

	a := sampleAgent()
	other := minimalAgent()
	if err := WriteAgentTo(dir, model.ClaudeCode, a); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteAgentTo(dir, model.ClaudeCode, other); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	if err := DeleteAgentFrom(dir, model.ClaudeCode, a.Name); err != nil {
		t.Fatalf("DeleteAgentFrom: %v", err)
	}

	if _, err := os.Stat(AgentPath(dir, model.ClaudeCode, a.Name)); !os.IsNotExist(err) {
		t.Errorf("deleted artifact still present")
	}
	// The agents directory itself and other artifacts stay put.
	if _, err := os.Stat(AgentPath(dir, model.ClaudeCode, other.Name)); err != nil {
		t.Errorf("sibling artifact removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "agents")); err != nil {
		t.Errorf("agents directory removed: %v", err)
	}
}

// Deleting artifacts that were never written, or deleting twice, never fails.
func TestDeleteIsIdempotent(t *testing.T) {
	tests := map[string]func(dir string) error{
		"skill claude-code": func(dir string) error {
			return DeleteSkillFrom(dir, model.ClaudeCode, "nonexistent")
		},
		"skill opencode": func(dir string) error {
			return DeleteSkillFrom(dir, model.OpenCode, "nonexistent")
		},
		"agent claude-code": func(dir string) error {
			return DeleteAgentFrom(dir, model.ClaudeCode, "nonexistent")
		},
		"agent opencode": func(dir string) error {
			return DeleteAgentFrom(dir, model.OpenCode, "nonexistent")
		},
	}

	for name, del := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := del(dir); err != nil {
				t.Fatalf("delete of absent artifact failed: %v", err)
			}
			// And twice in a row after a real write/delete cycle.
			if err := del(dir); err != nil {
				t.Fatalf("second delete failed: %v", err)
			}
		})
	}
}

func TestWriteFailsOnPathCollision(t *testing.T) {
	dir := t.TempDir()

	// A file where the .claude directory should be.
	if err := os.WriteFile(filepath.Join(dir, ".claude"), []byte("not a dir"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := WriteSkillTo(dir, model.ClaudeCode, sampleSkill()); err == nil {
		t.Error("expected error when a file blocks the directory path")
	}
}
