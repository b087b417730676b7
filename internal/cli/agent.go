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
	"github.com/agentdeck/agentdeck/internal/ui"
)

func agentCommand() *cli.Command {
	return &cli.Command{
		Name:  "agent",
		Usage: "Manage canonical sub-agent records",
		Commands: []*cli.Command{
			agentAddCommand(),
			agentListCommand(),
			agentShowCommand(),
			agentRemoveCommand(),
			agentImportCommand(),
		},
	}
}

func agentAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a sub-agent to the store",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Agent description (required)"},
			&cli.StringFlag{Name: "content", Usage: "Agent body text"},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read the agent body from a file"},
			&cli.StringSliceFlag{Name: "tool", Usage: "Granted tool (repeatable)"},
			&cli.StringFlag{Name: "model", Usage: "Model override"},
			&cli.StringFlag{Name: "permission-mode", Usage: "Claude Code permission mode"},
			&cli.StringSliceFlag{Name: "skill", Usage: "Referenced skill name (repeatable)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if err := frontmatter.ValidateName(name); err != nil {
				return fmt.Errorf("invalid agent name: %w", err)
			}
			description := cmd.String("description")
			if description == "" {
				return fmt.Errorf("description is required for sub-agents")
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

			agent := model.SubAgent{
				Name:           name,
				Description:    description,
				Content:        content,
				Tools:          cmd.StringSlice("tool"),
				Model:          cmd.String("model"),
				PermissionMode: cmd.String("permission-mode"),
				Skills:         cmd.StringSlice("skill"),
			}
			if err := s.CreateSubAgent(ctx, &agent); err != nil {
				return err
			}

			fmt.Println(ui.StatusSuccess(fmt.Sprintf("added agent %s", ui.Bold(name))))
			return nil
		},
	}
}

func agentListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List sub-agents in the store",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			agents, err := s.ListSubAgents(ctx)
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				fmt.Println(ui.Dim("no sub-agents in the store"))
				return nil
			}
			for _, agent := range agents {
				fmt.Println(ui.Bold(agent.Name) + "  " + ui.Dim(agent.Description))
			}
			return nil
		},
	}
}

func agentShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a sub-agent record",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			agent, err := s.GetSubAgent(ctx, cmd.Args().First())
			if err != nil {
				return err
			}

			fmt.Println(ui.Bold(agent.Name))
			fmt.Printf("  description: %s\n", agent.Description)
			if len(agent.Tools) > 0 {
				fmt.Printf("  tools: %s\n", strings.Join(agent.Tools, ", "))
			}
			if agent.Model != "" {
				fmt.Printf("  model: %s\n", agent.Model)
			}
			if agent.PermissionMode != "" {
				fmt.Printf("  permission mode: %s\n", agent.PermissionMode)
			}
			if len(agent.Skills) > 0 {
				fmt.Printf("  skills: %s\n", strings.Join(agent.Skills, ", "))
			}
			fmt.Printf("\n%s\n", agent.Content)
			return nil
		},
	}
}

func agentRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a sub-agent from the store",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			name := cmd.Args().First()
			if err := s.DeleteSubAgent(ctx, name); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("removed agent %s", ui.Bold(name))))
			return nil
		},
	}
}

func agentImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import a sub-agent from an existing agent document",
		ArgsUsage: "PATH",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			agent, err := readAgentDocument(path)
			if err != nil {
				return err
			}

			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.CreateSubAgent(ctx, &agent); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("imported agent %s from %s", ui.Bold(agent.Name), path)))
			return nil
		},
	}
}

// readAgentDocument parses a frontmatter document into a canonical sub-agent.
func readAgentDocument(path string) (model.SubAgent, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own arguments
	if err != nil {
		return model.SubAgent{}, fmt.Errorf("read agent document %q: %w", path, err)
	}

	result := frontmatter.Split(data)
	fm := map[string]any{}
	if result.Found {
		fm, err = frontmatter.Parse(result.Frontmatter)
		if err != nil {
			return model.SubAgent{}, fmt.Errorf("parse agent document %q: %w", path, err)
		}
	}

	name := frontmatter.String(fm, "name")
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := frontmatter.ValidateName(name); err != nil {
		return model.SubAgent{}, fmt.Errorf("invalid agent name in %q: %w", path, err)
	}

	description := frontmatter.String(fm, "description")
	if description == "" {
		return model.SubAgent{}, fmt.Errorf("agent document %q has no description", path)
	}

	return model.SubAgent{
		Name:           name,
		Description:    description,
		Content:        frontmatter.NormalizeContent(result.Content),
		Tools:          frontmatter.StringList(fm, "tools"),
		Model:          frontmatter.String(fm, "model"),
		PermissionMode: frontmatter.String(fm, "permissionMode"),
		Skills:         frontmatter.StringList(fm, "skills"),
		Source:         "import",
		SourcePath:     path,
	}, nil
}
