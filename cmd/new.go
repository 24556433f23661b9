package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/profile"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new profile",
	Long: `Creates a profile and saves it to the writable profile directory.

The new profile inherits every property it does not set from its parent,
which defaults to the built-in fallback profile.

Examples:
  profilectl new Work --parent Shell --command "bash -l" --workdir ~/src
  profilectl new Remote -p "Icon=network-server;ColorScheme=Solarized"`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

var (
	newParent    string
	newCommand   string
	newWorkdir   string
	newOverrides []string
	newFavorite  bool
	newShortcut  string
	newDefault   bool
)

func init() {
	newCmd.Flags().StringVar(&newParent, "parent", "", "Profile to inherit from")
	newCmd.Flags().StringVarP(&newCommand, "command", "e", "", "Command line the profile runs")
	newCmd.Flags().StringVarP(&newWorkdir, "workdir", "w", "", "Initial working directory")
	newCmd.Flags().StringArrayVarP(&newOverrides, "property", "p", nil, "Inline property assignments (Name=Value;Name=Value)")
	newCmd.Flags().BoolVar(&newFavorite, "favorite", false, "Add the profile to the favorites")
	newCmd.Flags().StringVar(&newShortcut, "shortcut", "", "Key sequence opening the profile")
	newCmd.Flags().BoolVar(&newDefault, "default", false, "Make the profile the default")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	var parent *profile.Profile
	if newParent != "" {
		p, err := findProfile(newParent)
		if err != nil {
			return err
		}
		parent = p
	}

	p, err := createProfile(newProfileRequest{
		Name:      args[0],
		Parent:    parent,
		Command:   newCommand,
		Directory: newWorkdir,
		Overrides: newOverrides,
	})
	if err != nil {
		return err
	}
	logSuccess("Created profile %s", displayName(p))
	logInfo("Saved to %s", p.Path())

	if !newFavorite && newShortcut == "" && !newDefault {
		return nil
	}

	m := mgr()
	if newFavorite {
		m.SetFavorite(p, true)
	}
	if newShortcut != "" {
		m.SetShortcut(p, newShortcut)
	}
	if newDefault {
		m.SetDefaultProfile(p)
	}
	return saveSettings()
}
