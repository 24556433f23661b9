package multiplexer

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

// Tmux implements Multiplexer for tmux.
type Tmux struct{}

func (t *Tmux) Type() Type { return TypeTmux }

// Script creates the session with the first window and adds the others
// with new-window. Environment entries are passed with -e, which needs
// tmux 3.0 or later.
func (t *Tmux) Script(name string, windows []Window) string {
	var sb strings.Builder
	sb.WriteString(scriptHeader)
	target := shellcmd.Quote(name)
	for i, w := range windows {
		if i == 0 {
			fmt.Fprintf(&sb, "tmux new-session -d -s %s", target)
		} else {
			fmt.Fprintf(&sb, "tmux new-window -t %s", target)
		}
		if w.Title != "" {
			fmt.Fprintf(&sb, " -n %s", shellcmd.Quote(w.Title))
		}
		if w.Dir != "" {
			fmt.Fprintf(&sb, " -c %s", shellcmd.Quote(w.Dir))
		}
		for _, kv := range w.Env {
			fmt.Fprintf(&sb, " -e %s", shellcmd.Quote(kv))
		}
		// tmux hands the command to sh -c, so it travels as one word
		if line := w.CommandLine(); line != "" {
			fmt.Fprintf(&sb, " %s", shellcmd.Quote(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Tmux) AttachCommand(name string) string {
	return fmt.Sprintf("tmux attach-session -t %s", shellcmd.Quote(name))
}
