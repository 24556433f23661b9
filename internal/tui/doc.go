// Package tui provides terminal user interface components for profilectl.
//
// This package uses the Bubble Tea framework for the interactive profile
// picker behind `profilectl pick`.
//
// # Profile Picker
//
// The picker lists profiles with favorites grouped first and lets the user
// act on one:
//
//	result, err := tui.RunPicker(manager.SortProfiles(m.LoadedProfiles()), m)
//	switch result.Action {
//	case tui.ActionLaunch:
//	    // Open a session with result.Profile
//	case tui.ActionFavorite:
//	    // Toggle result.Profile in the favorites
//	case tui.ActionDefault:
//	    // Make result.Profile the default
//	case tui.ActionNew:
//	    // Create a profile from result.NewProfile
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Favorites and other profiles under separate headers, headers auto-skipped
//   - Keyboard navigation (j/k or arrows) and / to filter by name
//   - Quick actions: Enter (launch), f (favorite), D (default), n (new), q (quit)
//   - Creation wizard for new profiles (name, parent, command, directory)
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
