package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/launch"
	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/multiplexer"
	"github.com/firefly-engineering/profilectl/internal/session"
	"github.com/firefly-engineering/profilectl/internal/terminal"
)

var tabsCmd = &cobra.Command{
	Use:   "tabs <file>",
	Short: "Print a multiplexer script opening the tabs listed in a file",
	Long: `Reads a tabs file and prints a shell script that opens one multiplexer
window per line. Use "-" to read the file from standard input.

Each line holds ";;"-separated fields:

  title: Editor;; profile: Work;; command: vim
  title: Logs;; command: journalctl -f;; workdir: /var/log

Lines starting with '#' are comments. A tab without a profile uses the
default profile.

Example:
  profilectl tabs session.txt | sh`,
	Args: cobra.ExactArgs(1),
	RunE: runTabs,
}

var (
	tabsMux     string
	tabsName    string
	tabsWorkdir string
	tabsAttach  bool
)

func init() {
	tabsCmd.Flags().StringVar(&tabsMux, "mux", "", "Multiplexer to script: tmux or wezterm (default detected from the terminal)")
	tabsCmd.Flags().StringVar(&tabsName, "name", multiplexer.DefaultSessionName, "Multiplexer session name")
	tabsCmd.Flags().StringVarP(&tabsWorkdir, "workdir", "w", "", "Working directory for tabs that do not set one")
	tabsCmd.Flags().BoolVar(&tabsAttach, "attach", false, "Append the command attaching to the session")
	rootCmd.AddCommand(tabsCmd)
}

func runTabs(cmd *cobra.Command, args []string) error {
	t, err := resolveMux(tabsMux)
	if err != nil {
		return err
	}

	var tabs []launch.Tab
	if args[0] == "-" {
		tabs, err = launch.ParseTabs(cmd.InOrStdin())
	} else {
		tabs, err = launch.ParseTabsFile(args[0])
	}
	if err != nil {
		return errors.InvalidArgument(err.Error())
	}

	windows, err := tabWindows(tabs, tabsWorkdir)
	if err != nil {
		return err
	}
	return writeScript(cmd.OutOrStdout(), multiplexer.New(t), tabsName, windows, tabsAttach)
}

// tabWindows starts a recording session for every tab and captures what
// each session received.
func tabWindows(tabs []launch.Tab, workdir string) ([]multiplexer.Window, error) {
	m := mgr()
	windows := make([]multiplexer.Window, 0, len(tabs))
	for _, tab := range tabs {
		s := m.CreateSession(tab.Resolve(m, workdir))
		r, ok := s.(*session.Recorder)
		if !ok {
			return nil, fmt.Errorf("unexpected session type %T", s)
		}
		if tab.Title != "" {
			r.SetTitle(session.DisplayedTitleRole, tab.Title)
		}
		windows = append(windows, multiplexer.WindowFromSession(r))
	}
	return windows, nil
}

// resolveMux parses a --mux value. An empty value picks the multiplexer
// matching the host terminal.
func resolveMux(name string) (multiplexer.Type, error) {
	if name == "" {
		t := terminal.DetectHost().Multiplexer()
		logging.Debug("multiplexer detected", "type", t)
		return t, nil
	}
	t, err := multiplexer.ParseType(name)
	if err != nil {
		return "", errors.InvalidArgument(err.Error())
	}
	return t, nil
}

func writeScript(out io.Writer, mux multiplexer.Multiplexer, name string, windows []multiplexer.Window, attach bool) error {
	if _, err := io.WriteString(out, mux.Script(name, windows)); err != nil {
		return err
	}
	if attach {
		_, err := fmt.Fprintln(out, mux.AttachCommand(name))
		return err
	}
	return nil
}
