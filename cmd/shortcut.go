package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/manager"
)

var shortcutCmd = &cobra.Command{
	Use:   "shortcut",
	Short: "Manage profile key bindings",
}

var shortcutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List key bindings",
	Args:  cobra.NoArgs,
	RunE:  runShortcutList,
}

var shortcutSetCmd = &cobra.Command{
	Use:   "set <keys> <profile>",
	Short: "Bind a key sequence to a profile",
	Long: `Binds a key sequence to a profile, replacing the profile's previous
binding.

Example:
  profilectl shortcut set Ctrl+Alt+W Work`,
	Args: cobra.ExactArgs(2),
	RunE: runShortcutSet,
}

var shortcutRemoveCmd = &cobra.Command{
	Use:     "remove <profile>",
	Aliases: []string{"rm"},
	Short:   "Remove a profile's key binding",
	Args:    cobra.ExactArgs(1),
	RunE:    runShortcutRemove,
}

var shortcutFindCmd = &cobra.Command{
	Use:   "find <keys>",
	Short: "Print the profile bound to a key sequence",
	Args:  cobra.ExactArgs(1),
	RunE:  runShortcutFind,
}

func init() {
	shortcutCmd.AddCommand(shortcutListCmd, shortcutSetCmd, shortcutRemoveCmd, shortcutFindCmd)
	rootCmd.AddCommand(shortcutCmd)
}

func runShortcutList(cmd *cobra.Command, args []string) error {
	m := mgr()
	keys := m.Shortcuts()
	if len(keys) == 0 {
		logInfo("No shortcuts defined. Bind one with: profilectl shortcut set <keys> <profile>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYS\tPROFILE")
	fmt.Fprintln(w, "----\t-------")
	for _, k := range keys {
		p, err := m.FindByShortcut(k)
		if err != nil {
			logWarning("Shortcut %s dropped: %v", k, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", k, displayName(p))
	}
	return w.Flush()
}

func runShortcutSet(cmd *cobra.Command, args []string) error {
	keys := args[0]
	p, err := findProfile(args[1])
	if err != nil {
		return err
	}

	m := mgr()
	if previous, err := m.FindByShortcut(keys); err == nil && previous != p {
		m.SetShortcut(previous, "")
		logWarning("%s was bound to %s", keys, displayName(previous))
	}
	m.SetShortcut(p, keys)
	if err := saveSettings(); err != nil {
		return err
	}

	logSuccess("Bound %s to %s", keys, displayName(p))
	return nil
}

func runShortcutRemove(cmd *cobra.Command, args []string) error {
	p, err := findProfile(args[0])
	if err != nil {
		return err
	}

	m := mgr()
	keys := m.Shortcut(p)
	if keys == "" {
		logInfo("%s has no shortcut", displayName(p))
		return nil
	}
	m.SetShortcut(p, "")
	if err := saveSettings(); err != nil {
		return err
	}

	logSuccess("Removed shortcut %s", keys)
	return nil
}

func runShortcutFind(cmd *cobra.Command, args []string) error {
	p, err := mgr().FindByShortcut(args[0])
	if err != nil {
		if errors.Is(err, manager.ErrShortcutNotFound) {
			return errors.ShortcutNotFound(args[0])
		}
		return errors.ProfileNotFound(args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", displayName(p), p.Path())
	return nil
}
