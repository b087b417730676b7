package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/logging"
	"github.com/agentdeck/agentdeck/internal/model"
	"github.com/agentdeck/agentdeck/internal/progress"
	"github.com/agentdeck/agentdeck/internal/projection"
	"github.com/agentdeck/agentdeck/internal/store"
	"github.com/agentdeck/agentdeck/internal/ui"
	"github.com/agentdeck/agentdeck/internal/ui/tui"
)

func placementFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Value: "skill", Usage: "Record kind: skill or agent"},
		&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "Target runtime: claude-code or opencode"},
		&cli.StringFlag{Name: "scope", Aliases: []string{"s"}, Usage: "Placement scope: global or project"},
		&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "Project directory for project scope"},
	}
}

// placement is a resolved (target, scope, project) triple.
type placement struct {
	target  model.Target
	scope   model.Scope
	project string
}

// resolvePlacement combines flags, config defaults, and (when neither names a
// target) the interactive picker.
func resolvePlacement(cmd *cli.Command, cfg *config.Config) (placement, error) {
	targetFlag := cmd.String("target")
	scopeFlag := cmd.String("scope")

	if targetFlag == "" && scopeFlag == "" && isInteractive() {
		result, err := tui.RunDeployPicker()
		if err != nil {
			return placement{}, err
		}
		if result.Action != tui.DeployPickerActionSelect {
			return placement{}, fmt.Errorf("no target selected")
		}
		return placement{
			target:  result.Target,
			scope:   result.Scope,
			project: projectDir(cmd, cfg),
		}, nil
	}

	if targetFlag == "" {
		targetFlag = cfg.Deploy.Target
	}
	if scopeFlag == "" {
		scopeFlag = cfg.Deploy.Scope
	}

	target, err := model.ParseTarget(targetFlag)
	if err != nil {
		return placement{}, err
	}
	scope, err := model.ParseScope(scopeFlag)
	if err != nil {
		return placement{}, err
	}
	return placement{target: target, scope: scope, project: projectDir(cmd, cfg)}, nil
}

func projectDir(cmd *cli.Command, cfg *config.Config) string {
	if p := cmd.String("project"); p != "" {
		return p
	}
	if cfg.Deploy.Project != "" {
		return cfg.Deploy.Project
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func deployCommand() *cli.Command {
	return &cli.Command{
		Name:      "deploy",
		Usage:     "Project records into a runtime's configuration",
		ArgsUsage: "[NAME...]",
		Flags: append(placementFlags(),
			&cli.BoolFlag{Name: "all", Usage: "Deploy every record of the given kind"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFromContext(ctx)
			place, err := resolvePlacement(cmd, cfg)
			if err != nil {
				return err
			}

			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			names := cmd.Args().Slice()
			if len(names) == 0 && !cmd.Bool("all") {
				return fmt.Errorf("nothing to deploy: pass record names or --all")
			}

			switch cmd.String("kind") {
			case "skill":
				return deploySkills(ctx, s, place, names, cmd.Bool("all"))
			case "agent":
				return deployAgents(ctx, s, place, names, cmd.Bool("all"))
			default:
				return fmt.Errorf("unknown kind %q (valid: skill, agent)", cmd.String("kind"))
			}
		},
	}
}

func deploySkills(ctx context.Context, s *store.Store, place placement, names []string, all bool) error {
	skills, err := selectSkills(ctx, s, names, all)
	if err != nil {
		return err
	}

	projector := projection.New()
	bar := progress.Simple(int64(len(skills)), "Deploying skills")
	for _, skill := range skills {
		if err := projector.WriteSkill(place.target, place.scope, place.project, skill); err != nil {
			return fmt.Errorf("deploy skill %q: %w", skill.Name, err)
		}
		logging.Info("deployed skill",
			logging.Skill(skill.Name),
			logging.Target(string(place.target)),
			logging.Scope(string(place.scope)),
		)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Println(ui.StatusSuccess(fmt.Sprintf("deployed %d skill(s) to %s (%s)", len(skills), place.target, place.scope)))
	return nil
}

func deployAgents(ctx context.Context, s *store.Store, place placement, names []string, all bool) error {
	agents, err := selectAgents(ctx, s, names, all)
	if err != nil {
		return err
	}

	projector := projection.New()
	bar := progress.Simple(int64(len(agents)), "Deploying agents")
	for _, agent := range agents {
		if err := projector.WriteAgent(place.target, place.scope, place.project, agent); err != nil {
			return fmt.Errorf("deploy agent %q: %w", agent.Name, err)
		}
		logging.Info("deployed agent",
			logging.Agent(agent.Name),
			logging.Target(string(place.target)),
			logging.Scope(string(place.scope)),
		)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Println(ui.StatusSuccess(fmt.Sprintf("deployed %d agent(s) to %s (%s)", len(agents), place.target, place.scope)))
	return nil
}

func selectSkills(ctx context.Context, s *store.Store, names []string, all bool) ([]model.Skill, error) {
	if all {
		return s.ListSkills(ctx)
	}
	skills := make([]model.Skill, 0, len(names))
	for _, name := range names {
		skill, err := s.GetSkill(ctx, name)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func selectAgents(ctx context.Context, s *store.Store, names []string, all bool) ([]model.SubAgent, error) {
	if all {
		return s.ListSubAgents(ctx)
	}
	agents := make([]model.SubAgent, 0, len(names))
	for _, name := range names {
		agent, err := s.GetSubAgent(ctx, name)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

func undeployCommand() *cli.Command {
	return &cli.Command{
		Name:      "undeploy",
		Usage:     "Remove projected records from a runtime's configuration",
		ArgsUsage: "NAME...",
		Flags:     placementFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFromContext(ctx)
			place, err := resolvePlacement(cmd, cfg)
			if err != nil {
				return err
			}

			names := cmd.Args().Slice()
			if len(names) == 0 {
				return fmt.Errorf("nothing to undeploy: pass record names")
			}

			kind := cmd.String("kind")
			if kind != "skill" && kind != "agent" {
				return fmt.Errorf("unknown kind %q (valid: skill, agent)", kind)
			}

			// Undeploy works without the store: removal only needs the name,
			// so records already deleted from the store can still be cleaned
			// up.
			projector := projection.New()
			for _, name := range names {
				if kind == "skill" {
					err = projector.DeleteSkill(place.target, place.scope, place.project, name)
				} else {
					err = projector.DeleteAgent(place.target, place.scope, place.project, name)
				}
				if err != nil {
					return fmt.Errorf("undeploy %s %q: %w", kind, name, err)
				}
				fmt.Println(ui.StatusSuccess(fmt.Sprintf("removed %s %s", kind, ui.Bold(name))))
			}
			return nil
		},
	}
}
