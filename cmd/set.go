package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/errors"
)

var setCmd = &cobra.Command{
	Use:   "set <profile> <Name=Value;...>...",
	Short: "Change properties of a profile",
	Long: `Sets properties on a profile and saves it. Each argument is an inline
property command: assignments separated by semicolons. Unknown property
names are ignored.

Examples:
  profilectl set Work "Icon=remote;Directory=/srv"
  profilectl set Work Command=zsh "Environment=EDITOR=vim,PAGER=less"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

var setNoSave bool

func init() {
	setCmd.Flags().BoolVar(&setNoSave, "no-save", false, "Apply the change without writing the profile file")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	p, err := findProfile(args[0])
	if err != nil {
		return err
	}

	changes := parseOverrides(args[1:])
	if changes.Len() == 0 {
		return errors.InvalidArgument(fmt.Sprintf("no known property in %q", strings.Join(args[1:], " ")))
	}

	if err := changeProfile(p, changes, !setNoSave); err != nil {
		return err
	}

	names := make([]string, 0, changes.Len())
	for _, id := range changes.Keys() {
		names = append(names, id.String())
	}
	logSuccess("Updated %s: %s", displayName(p), strings.Join(names, ", "))
	if !setNoSave && p.Path() != "" {
		logInfo("Saved to %s", p.Path())
	}
	return nil
}
