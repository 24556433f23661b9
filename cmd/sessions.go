package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/multiplexer"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/session"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage the saved session list",
	Long: `Keeps a list of sessions in the data directory. Each entry remembers its
profile and the inline property overrides applied to it, and can be turned
into a multiplexer script.`,
}

var sessionsAddCmd = &cobra.Command{
	Use:   "add [profile]",
	Short: "Add a session to the saved list",
	Long: `Creates a session from a profile, the default one when none is given,
applies inline property overrides to it and saves the session list.

Example:
  profilectl sessions add Work -p "Directory=/srv/api;Icon=network-server"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionsAdd,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsRemoveCmd = &cobra.Command{
	Use:     "remove <index>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved session by its list index",
	Args:    cobra.ExactArgs(1),
	RunE:    runSessionsRemove,
}

var sessionsScriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print a multiplexer script restoring the saved sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsScript,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved session",
	Args:  cobra.NoArgs,
	RunE:  runSessionsClear,
}

var (
	sessionsOverrides []string
	sessionsMux       string
	sessionsName      string
	sessionsAttach    bool
)

func init() {
	sessionsAddCmd.Flags().StringArrayVarP(&sessionsOverrides, "property", "p", nil, "Inline property overrides (Name=Value;Name=Value)")
	sessionsScriptCmd.Flags().StringVar(&sessionsMux, "mux", "", "Multiplexer to script: tmux or wezterm (default detected from the terminal)")
	sessionsScriptCmd.Flags().StringVar(&sessionsName, "name", multiplexer.DefaultSessionName, "Multiplexer session name")
	sessionsScriptCmd.Flags().BoolVar(&sessionsAttach, "attach", false, "Append the command attaching to the session")

	sessionsCmd.AddCommand(sessionsAddCmd, sessionsListCmd, sessionsRemoveCmd, sessionsScriptCmd, sessionsClearCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// restoreSessions replaces the manager's sessions with the saved list.
func restoreSessions() ([]*session.Recorder, error) {
	m := mgr()
	for _, s := range m.Sessions() {
		m.SessionTerminated(s)
	}

	restored, err := m.RestoreSessions(paths().SessionsFile())
	if err != nil {
		return nil, errors.ConfigError("failed to restore sessions", err)
	}

	out := make([]*session.Recorder, 0, len(restored))
	for _, s := range restored {
		r, ok := s.(*session.Recorder)
		if !ok {
			return nil, fmt.Errorf("unexpected session type %T", s)
		}
		out = append(out, r)
	}
	return out, nil
}

func saveSessions() error {
	if err := mgr().SaveSessions(paths().SessionsFile()); err != nil {
		return errors.WriteFailed("sessions", err)
	}
	return nil
}

func runSessionsAdd(cmd *cobra.Command, args []string) error {
	if _, err := restoreSessions(); err != nil {
		return err
	}

	m := mgr()
	var p *profile.Profile
	if len(args) == 1 {
		found, err := findProfile(args[0])
		if err != nil {
			return err
		}
		p = found
	}

	s := m.CreateSession(p)
	for _, text := range sessionsOverrides {
		if err := m.ProfileCommandReceived(s, text); err != nil {
			return err
		}
	}
	if err := saveSessions(); err != nil {
		return err
	}

	logSuccess("Added session %d (%s)", len(m.Sessions()), displayName(m.SessionProfile(s)))
	return nil
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	recorders, err := restoreSessions()
	if err != nil {
		return err
	}
	if len(recorders) == 0 {
		logInfo("No saved sessions. Add one with: profilectl sessions add <profile>")
		return nil
	}

	m := mgr()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPROFILE\tCOMMAND\tDIRECTORY")
	fmt.Fprintln(w, "-\t-------\t-------\t---------")
	for i, r := range recorders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i+1, displayName(m.SessionProfile(r)), shellcmd.Join(r.Program, r.Arguments), r.Directory)
	}
	return w.Flush()
}

func runSessionsRemove(cmd *cobra.Command, args []string) error {
	recorders, err := restoreSessions()
	if err != nil {
		return err
	}

	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > len(recorders) {
		return errors.InvalidArgument(fmt.Sprintf("no saved session %s (have %d)", args[0], len(recorders)))
	}

	mgr().SessionTerminated(recorders[i-1])
	if err := saveSessions(); err != nil {
		return err
	}
	logSuccess("Removed session %d", i)
	return nil
}

func runSessionsScript(cmd *cobra.Command, args []string) error {
	t, err := resolveMux(sessionsMux)
	if err != nil {
		return err
	}

	recorders, err := restoreSessions()
	if err != nil {
		return err
	}
	if len(recorders) == 0 {
		logInfo("No saved sessions. Add one with: profilectl sessions add <profile>")
		return nil
	}

	windows := make([]multiplexer.Window, 0, len(recorders))
	for _, r := range recorders {
		windows = append(windows, multiplexer.WindowFromSession(r))
	}
	return writeScript(cmd.OutOrStdout(), multiplexer.New(t), sessionsName, windows, sessionsAttach)
}

func runSessionsClear(cmd *cobra.Command, args []string) error {
	if err := os.Remove(paths().SessionsFile()); err != nil && !os.IsNotExist(err) {
		return errors.WriteFailed("sessions", err)
	}
	logSuccess("Cleared saved sessions")
	return nil
}
