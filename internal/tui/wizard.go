package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/profile"
)

// NewProfileOptions is what the wizard collected.
type NewProfileOptions struct {
	Name string
	// Parent is nil for the fallback profile.
	Parent    *profile.Profile
	Command   string
	Directory string
}

// wizardStep identifies the current step.
type wizardStep int

const (
	stepName wizardStep = iota
	stepParent
	stepCommand
	stepDirectory
	stepConfirm
)

// wizardModel drives the multi-step profile creation wizard.
type wizardModel struct {
	step wizardStep

	nameInput    textinput.Model
	nameErr      string
	parentList   list.Model
	commandInput textinput.Model
	dirInput     textinput.Model

	// Collected values
	selectedName   string
	selectedParent *profile.Profile

	width  int
	height int
}

// parentItem implements list.Item for parent selection.
type parentItem struct {
	profile *profile.Profile
}

func (p parentItem) Title() string {
	if p.profile == nil {
		return "(built-in defaults)"
	}
	return p.profile.Name()
}

func (p parentItem) Description() string {
	if p.profile == nil {
		return "Start from the fallback profile"
	}
	return p.profile.Path()
}

func (p parentItem) FilterValue() string { return p.Title() }

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func newWizardModel(parents []*profile.Profile) wizardModel {
	ni := textinput.New()
	ni.Placeholder = "Profile name"
	ni.Focus()
	ni.CharLimit = 128
	ni.Width = 40

	ci := textinput.New()
	ci.Placeholder = "Command (empty for the login shell)"
	ci.CharLimit = 512
	ci.Width = 60

	di := textinput.New()
	di.Placeholder = "~/src"
	di.CharLimit = 256
	di.Width = 60
	di.ShowSuggestions = true

	items := []list.Item{parentItem{}}
	for _, p := range parents {
		if !p.Hidden() {
			items = append(items, parentItem{profile: p})
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 60, 10)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return wizardModel{
		step:         stepName,
		nameInput:    ni,
		parentList:   l,
		commandInput: ci,
		dirInput:     di,
	}
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, opts, cmd).
// done=true with non-nil opts means the wizard completed.
// done=true with nil opts means it was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *NewProfileOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width, w.height = size.Width, size.Height
		w.parentList.SetSize(size.Width-4, size.Height-10)
		return false, nil, nil
	}

	switch w.step {
	case stepName:
		return w.updateName(msg)
	case stepParent:
		return w.updateParent(msg)
	case stepCommand:
		return w.updateInput(msg, &w.commandInput, stepDirectory, &w.dirInput)
	case stepDirectory:
		return w.updateDirectory(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}

	return false, nil, nil
}

func (w *wizardModel) handleBack() (bool, *NewProfileOptions, tea.Cmd) {
	switch w.step {
	case stepName:
		// Esc at first step cancels wizard
		return true, nil, nil
	case stepParent:
		w.step = stepName
		w.nameInput.Focus()
		return false, nil, textinput.Blink
	case stepCommand:
		w.step = stepParent
		w.commandInput.Blur()
		return false, nil, nil
	case stepDirectory:
		w.step = stepCommand
		w.dirInput.Blur()
		w.commandInput.Focus()
		return false, nil, textinput.Blink
	case stepConfirm:
		w.step = stepDirectory
		w.dirInput.Focus()
		return false, nil, textinput.Blink
	}
	return false, nil, nil
}

func (w *wizardModel) updateName(msg tea.Msg) (bool, *NewProfileOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		name := strings.TrimSpace(w.nameInput.Value())
		if err := config.ValidateProfileName(name); err != nil {
			w.nameErr = err.Error()
			return false, nil, nil
		}
		w.nameErr = ""
		w.selectedName = name
		w.step = stepParent
		w.nameInput.Blur()
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.nameInput, cmd = w.nameInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateParent(msg tea.Msg) (bool, *NewProfileOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		if item, ok := w.parentList.SelectedItem().(parentItem); ok {
			w.selectedParent = item.profile
			w.step = stepCommand
			w.commandInput.Focus()
			return false, nil, textinput.Blink
		}
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.parentList, cmd = w.parentList.Update(msg)
	return false, nil, cmd
}

// updateInput edits an optional text field and moves on with Enter.
func (w *wizardModel) updateInput(msg tea.Msg, ti *textinput.Model, next wizardStep, nextInput *textinput.Model) (bool, *NewProfileOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		ti.Blur()
		w.step = next
		if nextInput != nil {
			nextInput.Focus()
			return false, nil, textinput.Blink
		}
		return false, nil, nil
	}

	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateDirectory(msg tea.Msg) (bool, *NewProfileOptions, tea.Cmd) {
	done, opts, cmd := w.updateInput(msg, &w.dirInput, stepConfirm, nil)
	if w.step == stepDirectory {
		w.updatePathSuggestions()
	}
	return done, opts, cmd
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *NewProfileOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, w.options(), nil
		case "n":
			// Restart wizard
			w.step = stepName
			w.nameInput.SetValue("")
			w.nameInput.Focus()
			w.commandInput.SetValue("")
			w.dirInput.SetValue("")
			w.selectedName = ""
			w.selectedParent = nil
			w.parentList.Select(0)
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

func (w *wizardModel) options() *NewProfileOptions {
	return &NewProfileOptions{
		Name:      w.selectedName,
		Parent:    w.selectedParent,
		Command:   strings.TrimSpace(w.commandInput.Value()),
		Directory: expandHome(strings.TrimSpace(w.dirInput.Value())),
	}
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("Create New Profile"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepName:
		b.WriteString(wizardLabelStyle.Render("Profile name:"))
		b.WriteString("\n")
		b.WriteString(w.nameInput.View())
		b.WriteString("\n\n")
		if w.nameErr != "" {
			b.WriteString(wizardErrStyle.Render(w.nameErr))
			b.WriteString("\n")
		}
		b.WriteString(wizardDimStyle.Render("Shown in menus and used as the file name."))
	case stepParent:
		b.WriteString(wizardLabelStyle.Render("Inherit from:"))
		b.WriteString("\n")
		b.WriteString(w.parentList.View())
	case stepCommand:
		b.WriteString(wizardLabelStyle.Render("Command:"))
		b.WriteString("\n")
		b.WriteString(w.commandInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Leave empty to inherit. Quote arguments as in a shell."))
	case stepDirectory:
		b.WriteString(wizardLabelStyle.Render("Initial directory:"))
		b.WriteString("\n")
		b.WriteString(w.dirInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Leave empty to inherit. Tab to complete."))
	case stepConfirm:
		opts := w.options()
		parent := parentItem{profile: opts.Parent}.Title()
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Name:      %s\n", wizardValueStyle.Render(opts.Name)))
		b.WriteString(fmt.Sprintf("  Parent:    %s\n", wizardValueStyle.Render(parent)))
		if opts.Command != "" {
			b.WriteString(fmt.Sprintf("  Command:   %s\n", wizardValueStyle.Render(opts.Command)))
		}
		if opts.Directory != "" {
			b.WriteString(fmt.Sprintf("  Directory: %s\n", wizardValueStyle.Render(opts.Directory)))
		}
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Enter to create, n to restart, Esc to go back."))
	}

	return b.String()
}

func (w *wizardModel) progressBar() string {
	steps := []string{"Name", "Parent", "Command", "Directory", "Confirm"}

	var parts []string
	for i, s := range steps {
		label := fmt.Sprintf("%d. %s", i+1, s)
		if wizardStep(i) == w.step {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (w *wizardModel) updatePathSuggestions() {
	val := w.dirInput.Value()
	if val == "" {
		w.dirInput.SetSuggestions(nil)
		return
	}

	expanded := expandHome(val)
	dir := expanded
	prefix := ""

	info, err := os.Stat(expanded)
	if err != nil || !info.IsDir() {
		dir = filepath.Dir(expanded)
		prefix = filepath.Base(expanded)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.dirInput.SetSuggestions(nil)
		return
	}

	var suggestions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			continue
		}
		full := filepath.Join(dir, name)
		// Convert back to use ~ if original used ~
		if strings.HasPrefix(val, "~") {
			if home, err := os.UserHomeDir(); err == nil {
				full = "~" + strings.TrimPrefix(full, home)
			}
		}
		suggestions = append(suggestions, full)
	}

	w.dirInput.SetSuggestions(suggestions)
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
