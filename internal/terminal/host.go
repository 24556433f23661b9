// Package terminal inspects the terminal profilectl runs in, to pick the
// multiplexer a generated script should drive.
package terminal

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/multiplexer"
)

// tabTitleCutoffDate is the first WezTerm release whose CLI has
// set-tab-title (2023-03-20).
var tabTitleCutoffDate = [3]int{2023, 3, 20}

// Regexps for the two known WezTerm version formats.
var (
	// Unstable: "0-unstable-YYYY-MM-DD"
	unstableRe = regexp.MustCompile(`^0-unstable-(\d{4})-(\d{2})-(\d{2})$`)
	// Stable: "YYYYMMDD-HHMMSS-hash"
	stableRe = regexp.MustCompile(`^(\d{8})-\d{6}-[0-9a-f]+$`)
)

// Host describes the hosting terminal.
type Host struct {
	// Program is $TERM_PROGRAM, e.g. "WezTerm".
	Program string
	// Version is $TERM_PROGRAM_VERSION.
	Version string
	// InTmux is true inside a tmux client.
	InTmux bool
}

// DetectHost reads the host terminal from the environment.
func DetectHost() Host {
	return detectHost(os.Getenv)
}

func detectHost(getenv func(string) string) Host {
	return Host{
		Program: getenv("TERM_PROGRAM"),
		Version: getenv("TERM_PROGRAM_VERSION"),
		InTmux:  getenv("TMUX") != "",
	}
}

// IsWezTerm reports whether the host is WezTerm.
func (h Host) IsWezTerm() bool {
	return h.Program == "WezTerm"
}

// Multiplexer returns the backend a script should target: WezTerm when
// running directly in a WezTerm recent enough to title tabs, tmux
// otherwise.
func (h Host) Multiplexer() multiplexer.Type {
	if h.IsWezTerm() && !h.InTmux && versionSupportsTabTitles(h.Version) {
		return multiplexer.TypeWezterm
	}
	return multiplexer.TypeTmux
}

// versionSupportsTabTitles checks a WezTerm version string against the
// minimum cutoff date.
func versionSupportsTabTitles(version string) bool {
	version = strings.TrimSpace(version)
	if version == "" {
		return false
	}

	// Try unstable format: 0-unstable-YYYY-MM-DD
	if m := unstableRe.FindStringSubmatch(version); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return !dateBefore(y, mo, d, tabTitleCutoffDate)
	}

	// Try stable format: YYYYMMDD-HHMMSS-hash
	if m := stableRe.FindStringSubmatch(version); m != nil {
		dateStr := m[1]
		y, _ := strconv.Atoi(dateStr[:4])
		mo, _ := strconv.Atoi(dateStr[4:6])
		d, _ := strconv.Atoi(dateStr[6:8])
		return !dateBefore(y, mo, d, tabTitleCutoffDate)
	}

	return false
}

// dateBefore reports whether (y, m, d) is strictly before the cutoff.
func dateBefore(y, m, d int, cutoff [3]int) bool {
	if y != cutoff[0] {
		return y < cutoff[0]
	}
	if m != cutoff[1] {
		return m < cutoff[1]
	}
	return d < cutoff[2]
}
