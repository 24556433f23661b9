package multiplexer

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

// Wezterm implements Multiplexer for the wezterm CLI. wezterm has no named
// sessions, so the name becomes the workspace.
type Wezterm struct{}

func (w *Wezterm) Type() Type { return TypeWezterm }

func (w *Wezterm) Script(name string, windows []Window) string {
	var sb strings.Builder
	sb.WriteString(scriptHeader)
	for i, win := range windows {
		sb.WriteString("pane=$(wezterm cli spawn")
		if i == 0 {
			fmt.Fprintf(&sb, " --new-window --workspace %s", shellcmd.Quote(name))
		}
		if win.Dir != "" {
			fmt.Fprintf(&sb, " --cwd %s", shellcmd.Quote(win.Dir))
		}
		if win.Program != "" || len(win.Env) > 0 {
			sb.WriteString(" --")
			if len(win.Env) > 0 {
				sb.WriteString(" env")
				for _, kv := range win.Env {
					fmt.Fprintf(&sb, " %s", shellcmd.Quote(kv))
				}
			}
			if line := win.CommandLine(); line != "" {
				fmt.Fprintf(&sb, " %s", line)
			}
		}
		sb.WriteString(")\n")
		if win.Title != "" {
			fmt.Fprintf(&sb, "wezterm cli set-tab-title --pane-id \"$pane\" %s\n", shellcmd.Quote(win.Title))
		}
	}
	return sb.String()
}

// AttachCommand connects a GUI window to the workspace.
func (w *Wezterm) AttachCommand(name string) string {
	return fmt.Sprintf("wezterm start --workspace %s", shellcmd.Quote(name))
}
