package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/errors"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <profile>",
	Aliases: []string{"rm"},
	Short:   "Delete a profile",
	Long: `Removes the profile file and drops the profile from the favorites and
shortcuts. Deleting the default profile makes another profile the default.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	p, err := findProfile(args[0])
	if err != nil {
		return err
	}

	name := displayName(p)
	if err := mgr().DeleteProfile(p); err != nil {
		return errors.WriteFailed("profile "+name, err)
	}
	if err := saveSettings(); err != nil {
		return err
	}

	logSuccess("Deleted profile %s", name)
	return nil
}
