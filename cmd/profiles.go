package cmd

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"ls"},
	Short:   "List available profiles",
	Args:    cobra.NoArgs,
	RunE:    runProfiles,
}

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List every profile property with its type",
	Args:  cobra.NoArgs,
	RunE:  runProperties,
}

var profilesNames bool

func init() {
	profilesCmd.Flags().BoolVar(&profilesNames, "names", false, "Print only the names of the available profiles")
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(propertiesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	m := mgr()

	if profilesNames {
		names := m.AvailableProfileNames()
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	list := visibleProfiles()
	if len(list) == 0 {
		logInfo("No profiles found. Create one with: profilectl new <name>")
		return nil
	}

	def := m.DefaultProfile()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMMAND\tFAV\tSHORTCUT\tPATH")
	fmt.Fprintln(w, "----\t-------\t---\t--------\t----")

	for _, p := range list {
		name := displayName(p)
		if p == def {
			name += " (default)"
		}
		fav := ""
		if m.IsFavorite(p) {
			fav = "★"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			name, commandOf(p), fav, m.Shortcut(p), p.Path())
	}

	return w.Flush()
}

func runProperties(cmd *cobra.Command, args []string) error {
	for _, line := range profile.PropertiesInfoList() {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

// commandOf is the profile's command line, or "(shell)" when it runs the
// user's shell.
func commandOf(p *profile.Profile) string {
	if p.Command() == "" {
		return "(shell)"
	}
	return shellcmd.Join(p.Command(), p.Arguments())
}
