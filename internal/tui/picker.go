// Package tui provides terminal user interface components for profilectl
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/profilectl/internal/profile"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionLaunch
	ActionNew
	ActionFavorite
	ActionDefault
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Profile *profile.Profile
	// NewProfile is set when ActionNew completed the wizard.
	NewProfile *NewProfileOptions
}

// Source is what the picker needs to know about profiles. The manager
// satisfies it.
type Source interface {
	DefaultProfile() *profile.Profile
	IsFavorite(p *profile.Profile) bool
	Shortcut(p *profile.Profile) string
}

// profileItem implements list.Item for profile display
type profileItem struct {
	profile   *profile.Profile
	favorite  bool
	isDefault bool
	shortcut  string
}

func (i profileItem) Title() string {
	name := i.profile.Name()
	if i.isDefault {
		name += " (default)"
	}
	return name
}

func (i profileItem) Description() string {
	icon := "☆"
	if i.favorite {
		icon = "★"
	}

	command := i.profile.Command()
	if command == "" {
		command = "(shell)"
	}

	parts := []string{icon, command}
	if i.shortcut != "" {
		parts = append(parts, i.shortcut)
	}
	if dir := i.profile.Directory(); dir != "" {
		parts = append(parts, truncatePath(dir, 30))
	}
	return strings.Join(parts, " | ")
}

func (i profileItem) FilterValue() string {
	return i.profile.Name()
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the profile picker
type Model struct {
	list     list.Model
	wizard   *wizardModel
	parents  []*profile.Profile
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new profile picker. profiles should already be in
// menu order; favorites are listed first.
func NewPicker(profiles []*profile.Profile, src Source) Model {
	items := buildGroupedItems(profiles, src)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = "profilectl - Select Profile"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	skipHeaders(&l, 1)

	return Model{
		list:    l,
		parents: profiles,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.wizard != nil {
		return m.updateWizard(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			return m.choose(ActionLaunch)
		case "f":
			return m.choose(ActionFavorite)
		case "D":
			return m.choose(ActionDefault)
		case "n":
			w := newWizardModel(m.parents)
			w.width, w.height = m.width, m.height
			m.wizard = &w
			return m, w.Init()
		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		case "up", "k", "down", "j":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			skipHeaders(&m.list, navigationDirection(msg))
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) choose(action Action) (tea.Model, tea.Cmd) {
	if isHeaderSelected(&m.list) {
		return m, nil
	}
	item, ok := m.list.SelectedItem().(profileItem)
	if !ok {
		return m, nil
	}
	m.result = PickerResult{Action: action, Profile: item.profile}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, opts, cmd := m.wizard.Update(msg)
	if !done {
		return m, cmd
	}
	m.wizard = nil
	if opts == nil {
		// cancelled, back to the list
		return m, nil
	}
	m.result = PickerResult{Action: ActionNew, NewProfile: opts}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.wizard != nil {
		return m.wizard.View()
	}

	help := helpStyle.Render("[enter] Launch  [f] Favorite  [D] Default  [n] New  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive profile picker
func RunPicker(profiles []*profile.Profile, src Source) (PickerResult, error) {
	m := NewPicker(profiles, src)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive rendering of the same list, used when
// stdout is not a terminal.
func SimplePicker(profiles []*profile.Profile, src Source) string {
	var sb strings.Builder

	sb.WriteString("profilectl - Profiles\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(profiles) == 0 {
		sb.WriteString("No profiles found.\n")
		sb.WriteString("Create one with: profilectl new <name>\n")
		return sb.String()
	}

	n := 0
	for _, it := range buildGroupedItems(profiles, src) {
		switch it := it.(type) {
		case headerItem:
			sb.WriteString(it.label + "\n")
		case profileItem:
			n++
			sb.WriteString(fmt.Sprintf("%d. %s\n", n, it.Title()))
			sb.WriteString(fmt.Sprintf("   %s\n", it.Description()))
		}
	}

	return sb.String()
}
