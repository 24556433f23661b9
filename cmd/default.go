package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var defaultCmd = &cobra.Command{
	Use:   "default [profile]",
	Short: "Show or change the default profile",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDefault,
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}

func runDefault(cmd *cobra.Command, args []string) error {
	m := mgr()

	if len(args) == 0 {
		p := m.DefaultProfile()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", displayName(p), p.Path())
		return nil
	}

	p, err := findProfile(args[0])
	if err != nil {
		return err
	}
	m.SetDefaultProfile(p)
	if err := saveSettings(); err != nil {
		return err
	}

	logSuccess("Default profile is now %s", displayName(p))
	return nil
}
