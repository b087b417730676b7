package projection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentdeck/agentdeck/internal/logging"
	"github.com/agentdeck/agentdeck/internal/model"
)

// WriteSkillTo serializes a skill for the target runtime and writes its
// artifact under base, creating any missing parent directories. An existing
// artifact is fully replaced.
func WriteSkillTo(base string, target model.Target, s model.Skill) error {
	path := SkillPath(base, target, s.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create skill directory for %q: %w", path, err)
	}
	doc := SchemaFor(target).SkillDocument(s)
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("write skill artifact %q: %w", path, err)
	}
	logging.Debug("wrote skill artifact",
		logging.Skill(s.Name),
		logging.Target(string(target)),
		logging.Path(path),
	)
	return nil
}

// DeleteSkillFrom removes a skill's artifact under base. Claude Code skills
// are directory-per-artifact, so the whole skill directory is removed
// recursively. Deleting an absent artifact is success.
func DeleteSkillFrom(base string, target model.Target, name string) error {
	if target == model.OpenCode {
		return removeFile(SkillPath(base, target, name))
	}
	dir := SkillDir(base, target, name)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove skill directory %q: %w", dir, err)
	}
	logging.Debug("removed skill artifact",
		logging.Skill(name),
		logging.Target(string(target)),
		logging.Path(dir),
	)
	return nil
}

// WriteAgentTo serializes a sub-agent for the target runtime and writes its
// artifact under base, creating any missing parent directories. An existing
// artifact is fully replaced.
func WriteAgentTo(base string, target model.Target, a model.SubAgent) error {
	path := AgentPath(base, target, a.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create agent directory for %q: %w", path, err)
	}
	doc := SchemaFor(target).AgentDocument(a)
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("write agent artifact %q: %w", path, err)
	}
	logging.Debug("wrote agent artifact",
		logging.Agent(a.Name),
		logging.Target(string(target)),
		logging.Path(path),
	)
	return nil
}

// DeleteAgentFrom removes a sub-agent's artifact under base.
// Deleting an absent artifact is success.
func DeleteAgentFrom(base string, target model.Target, name string) error {
	return removeFile(AgentPath(base, target, name))
}

// removeFile deletes path if it exists. Absence is not an error: callers
// delete on a best-effort basis during record removal and must not need an
// existence check first.
func removeFile(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove artifact %q: %w", path, err)
	}
	logging.Debug("removed artifact", logging.Path(path))
	return nil
}
