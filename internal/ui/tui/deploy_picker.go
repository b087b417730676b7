// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentdeck/agentdeck/internal/model"
)

// DeployPickerAction represents the action to perform after selection.
type DeployPickerAction int

const (
	// DeployPickerActionNone means no action was taken (user quit).
	DeployPickerActionNone DeployPickerAction = iota
	// DeployPickerActionSelect means the user chose a target and scope.
	DeployPickerActionSelect
)

// DeployPickerResult contains the result of the deploy picker interaction.
type DeployPickerResult struct {
	Action DeployPickerAction
	Target model.Target
	Scope  model.Scope
}

// deployPickerPhase represents the current selection phase.
type deployPickerPhase int

const (
	phaseTarget deployPickerPhase = iota
	phaseScope
)

// deployPickerKeyMap defines the key bindings for the deploy picker.
type deployPickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultDeployPickerKeyMap() deployPickerKeyMap {
	return deployPickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DeployPickerModel is the BubbleTea model for choosing where a record is
// projected: first the target runtime, then the placement scope.
type DeployPickerModel struct {
	targets  []model.Target
	scopes   []model.Scope
	cursor   int
	target   model.Target
	phase    deployPickerPhase
	keys     deployPickerKeyMap
	result   DeployPickerResult
	width    int
	height   int
	quitting bool
}

var deployPickerStyles = struct {
	Title       lipgloss.Style
	Help        lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
	Status      lipgloss.Style
	Highlight   lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Item:        lipgloss.NewStyle().Padding(0, 2),
	Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2),
	Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 4),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	Highlight:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
}

var deployTitleCaser = cases.Title(language.English)

// NewDeployPickerModel creates a new deploy picker model.
func NewDeployPickerModel() DeployPickerModel {
	return DeployPickerModel{
		targets: model.AllTargets(),
		scopes:  model.AllScopes(),
		keys:    defaultDeployPickerKeyMap(),
		phase:   phaseTarget,
	}
}

// Init implements tea.Model.
func (m DeployPickerModel) Init() tea.Cmd {
	return nil
}

func (m DeployPickerModel) itemCount() int {
	if m.phase == phaseTarget {
		return len(m.targets)
	}
	return len(m.scopes)
}

// Update implements tea.Model.
func (m DeployPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.itemCount()-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.phase == phaseScope {
				m.phase = phaseTarget
				m.cursor = 0
				for i, target := range m.targets {
					if target == m.target {
						m.cursor = i
						break
					}
				}
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if m.phase == phaseTarget {
				m.target = m.targets[m.cursor]
				m.phase = phaseScope
				m.cursor = 0
				return m, nil
			}

			m.result = DeployPickerResult{
				Action: DeployPickerActionSelect,
				Target: m.target,
				Scope:  m.scopes[m.cursor],
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m DeployPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	var title string
	if m.phase == phaseTarget {
		title = deployPickerStyles.Title.Render("Deploy - Select Target Runtime")
	} else {
		title = deployPickerStyles.Title.Render("Deploy - Select Scope")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.phase == phaseScope {
		targetLabel := deployPickerStyles.Highlight.Render(string(m.target))
		b.WriteString(fmt.Sprintf("  Target: %s\n\n", targetLabel))
	}

	if m.phase == phaseTarget {
		for i, target := range m.targets {
			m.renderItem(&b, i, string(target), target.Description())
		}
	} else {
		for i, scope := range m.scopes {
			m.renderItem(&b, i, deployTitleCaser.String(string(scope)), scope.Description())
		}
	}

	b.WriteString("\n")

	var status string
	if m.phase == phaseTarget {
		status = "Select the runtime to deploy INTO"
	} else {
		status = "Select where the artifacts are placed"
	}
	b.WriteString(deployPickerStyles.Status.Render(status))
	b.WriteString("\n")
	b.WriteString(m.renderShortHelp())

	return b.String()
}

func (m DeployPickerModel) renderItem(b *strings.Builder, i int, label, desc string) {
	if i == m.cursor {
		b.WriteString(deployPickerStyles.Selected.Render("> " + label))
	} else {
		b.WriteString(deployPickerStyles.Item.Render("  " + label))
	}
	b.WriteString("\n")
	b.WriteString(deployPickerStyles.Description.Render(desc))
	b.WriteString("\n")
}

func (m DeployPickerModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"enter select",
	}
	if m.phase == phaseScope {
		keys = append(keys, "esc back")
	}
	keys = append(keys, "q quit")
	return deployPickerStyles.Help.Render(strings.Join(keys, " • "))
}

// Result returns the result of the user interaction.
func (m DeployPickerModel) Result() DeployPickerResult {
	return m.result
}

// RunDeployPicker runs the interactive deploy picker and returns the result.
func RunDeployPicker() (DeployPickerResult, error) {
	picker := NewDeployPickerModel()
	finalModel, err := tea.NewProgram(picker, tea.WithAltScreen()).Run()
	if err != nil {
		return DeployPickerResult{}, err
	}

	if m, ok := finalModel.(DeployPickerModel); ok {
		return m.Result(), nil
	}
	return DeployPickerResult{}, nil
}
