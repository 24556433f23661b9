package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Manage favorite profiles",
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite profiles in menu order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range mgr().SortedFavorites() {
			fmt.Fprintln(cmd.OutOrStdout(), displayName(p))
		}
		return nil
	},
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <profile>...",
	Short: "Add profiles to the favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFavorites(args, true)
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:     "remove <profile>...",
	Aliases: []string{"rm"},
	Short:   "Remove profiles from the favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFavorites(args, false)
	},
}

func init() {
	favoriteCmd.AddCommand(favoriteListCmd, favoriteAddCmd, favoriteRemoveCmd)
	rootCmd.AddCommand(favoriteCmd)
}

func setFavorites(names []string, favorite bool) error {
	m := mgr()
	for _, name := range names {
		p, err := findProfile(name)
		if err != nil {
			return err
		}
		m.SetFavorite(p, favorite)
		if favorite {
			logSuccess("Added %s to the favorites", displayName(p))
		} else {
			logSuccess("Removed %s from the favorites", displayName(p))
		}
	}
	return saveSettings()
}
