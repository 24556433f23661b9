package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive profile picker",
	Long: `Opens an interactive TUI for selecting a profile.

Use arrow keys or j/k to navigate, / to filter, Enter to show the session
the profile starts.

Actions:
  Enter  - Show the session for the selected profile
  f      - Toggle favorite
  D      - Make the selected profile the default
  n      - Create a new profile
  q/Esc  - Quit

Without a terminal the profile list is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	m := mgr()
	out := cmd.OutOrStdout()

	logging.Debug("picker mode started")

	profiles := visibleProfiles()
	if !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprint(out, tui.SimplePicker(profiles, m))
		return nil
	}

	result, err := tui.RunPicker(profiles, m)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)
	return handlePick(cmd, result)
}

// handlePick carries out the action chosen in the picker.
func handlePick(cmd *cobra.Command, result tui.PickerResult) error {
	m := mgr()

	switch result.Action {
	case tui.ActionLaunch:
		if result.Profile != nil {
			return printSession(cmd.OutOrStdout(), result.Profile)
		}

	case tui.ActionFavorite:
		if result.Profile != nil {
			favorite := !m.IsFavorite(result.Profile)
			m.SetFavorite(result.Profile, favorite)
			if err := saveSettings(); err != nil {
				return err
			}
			if favorite {
				logSuccess("Added %s to the favorites", displayName(result.Profile))
			} else {
				logSuccess("Removed %s from the favorites", displayName(result.Profile))
			}
		}

	case tui.ActionDefault:
		if result.Profile != nil {
			m.SetDefaultProfile(result.Profile)
			if err := saveSettings(); err != nil {
				return err
			}
			logSuccess("Default profile is now %s", displayName(result.Profile))
		}

	case tui.ActionNew:
		if opts := result.NewProfile; opts != nil {
			p, err := createProfile(newProfileRequest{
				Name:      opts.Name,
				Parent:    opts.Parent,
				Command:   opts.Command,
				Directory: opts.Directory,
			})
			if err != nil {
				return err
			}
			logSuccess("Created profile %s", displayName(p))
			logInfo("Saved to %s", p.Path())
		}

	case tui.ActionQuit, tui.ActionNone:
		// Just exit cleanly
	}

	return nil
}
