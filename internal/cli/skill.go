package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/agentdeck/agentdeck/internal/frontmatter"
	"github.com/agentdeck/agentdeck/internal/model"
	"github.com/agentdeck/agentdeck/internal/store"
	"github.com/agentdeck/agentdeck/internal/ui"
)

func openStore(ctx context.Context) (*store.Store, error) {
	path, err := configFromContext(ctx).StorePath()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, path)
}

func skillCommand() *cli.Command {
	return &cli.Command{
		Name:  "skill",
		Usage: "Manage canonical skill records",
		Commands: []*cli.Command{
			skillAddCommand(),
			skillListCommand(),
			skillShowCommand(),
			skillRemoveCommand(),
			skillImportCommand(),
		},
	}
}

func skillAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a skill to the store",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Skill description"},
			&cli.StringFlag{Name: "content", Usage: "Skill body text"},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read the skill body from a file"},
			&cli.StringSliceFlag{Name: "tool", Usage: "Allowed tool (repeatable)"},
			&cli.StringFlag{Name: "model", Usage: "Model override"},
			&cli.BoolFlag{Name: "disable-model-invocation", Usage: "Disable automatic model invocation"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if err := frontmatter.ValidateName(name); err != nil {
				return fmt.Errorf("invalid skill name: %w", err)
			}

			content, err := resolveContent(cmd)
			if err != nil {
				return err
			}

			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			skill := model.Skill{
				Name:                   name,
				Description:            cmd.String("description"),
				Content:                content,
				AllowedTools:           cmd.StringSlice("tool"),
				Model:                  cmd.String("model"),
				DisableModelInvocation: cmd.Bool("disable-model-invocation"),
			}
			if err := s.CreateSkill(ctx, &skill); err != nil {
				return err
			}

			fmt.Println(ui.StatusSuccess(fmt.Sprintf("added skill %s", ui.Bold(name))))
			return nil
		},
	}
}

func skillListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List skills in the store",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			skills, err := s.ListSkills(ctx)
			if err != nil {
				return err
			}
			if len(skills) == 0 {
				fmt.Println(ui.Dim("no skills in the store"))
				return nil
			}
			for _, skill := range skills {
				line := ui.Bold(skill.Name)
				if skill.Description != "" {
					line += "  " + ui.Dim(skill.Description)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func skillShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a skill record",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			skill, err := s.GetSkill(ctx, cmd.Args().First())
			if err != nil {
				return err
			}

			fmt.Println(ui.Bold(skill.Name))
			if skill.Description != "" {
				fmt.Printf("  description: %s\n", skill.Description)
			}
			if len(skill.AllowedTools) > 0 {
				fmt.Printf("  allowed tools: %s\n", strings.Join(skill.AllowedTools, ", "))
			}
			if skill.Model != "" {
				fmt.Printf("  model: %s\n", skill.Model)
			}
			if skill.DisableModelInvocation {
				fmt.Println("  model invocation: disabled")
			}
			fmt.Printf("\n%s\n", skill.Content)
			return nil
		},
	}
}

func skillRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a skill from the store",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			name := cmd.Args().First()
			if err := s.DeleteSkill(ctx, name); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("removed skill %s", ui.Bold(name))))
			return nil
		},
	}
}

func skillImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import a skill from an existing SKILL.md-style document",
		ArgsUsage: "PATH",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			skill, err := readSkillDocument(path)
			if err != nil {
				return err
			}

			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.CreateSkill(ctx, &skill); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("imported skill %s from %s", ui.Bold(skill.Name), path)))
			return nil
		},
	}
}

// readSkillDocument parses a frontmatter document into a canonical skill.
// The name falls back to the filename when the metadata omits it.
func readSkillDocument(path string) (model.Skill, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own arguments
	if err != nil {
		return model.Skill{}, fmt.Errorf("read skill document %q: %w", path, err)
	}

	result := frontmatter.Split(data)
	fm := map[string]any{}
	if result.Found {
		fm, err = frontmatter.Parse(result.Frontmatter)
		if err != nil {
			return model.Skill{}, fmt.Errorf("parse skill document %q: %w", path, err)
		}
	}

	name := frontmatter.String(fm, "name")
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		if strings.EqualFold(base, "SKILL.md") {
			name = filepath.Base(filepath.Dir(path))
		}
	}
	if err := frontmatter.ValidateName(name); err != nil {
		return model.Skill{}, fmt.Errorf("invalid skill name in %q: %w", path, err)
	}

	return model.Skill{
		Name:                   name,
		Description:            frontmatter.String(fm, "description"),
		Content:                frontmatter.NormalizeContent(result.Content),
		AllowedTools:           frontmatter.StringList(fm, "allowed-tools"),
		Model:                  frontmatter.String(fm, "model"),
		DisableModelInvocation: frontmatter.Bool(fm, "disable-model-invocation"),
		Source:                 "import",
		SourcePath:             path,
	}, nil
}

func resolveContent(cmd *cli.Command) (string, error) {
	if file := cmd.String("file"); file != "" {
		data, err := os.ReadFile(file) // #nosec G304 -- path comes from the user's own arguments
		if err != nil {
			return "", fmt.Errorf("read content file %q: %w", file, err)
		}
		return string(data), nil
	}
	content := cmd.String("content")
	if content == "" {
		return "", fmt.Errorf("content is required (--content or --file)")
	}
	return content, nil
}
