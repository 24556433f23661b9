package launch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

// ErrNoTabs is returned when a tabs file has no usable line.
var ErrNoTabs = errors.New("no valid tabs found")

// Tab is one line of a tabs file:
//
//	title: Logs;; command: tail -f /var/log/syslog;; workdir: /var/log
//	profile: Work
//
// Fields are separated by ";;". Lines starting with '#' are comments.
type Tab struct {
	Title   string
	Command string
	Profile string
	Workdir string

	// Line is the 1-based line number in the file.
	Line int
}

// ParseTabsFile reads the tabs file at path.
func ParseTabsFile(path string) ([]Tab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open tabs file: %w", err)
	}
	defer f.Close()

	tabs, err := ParseTabs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tabs, nil
}

// ParseTabs reads tabs from r. Lines without a command or a profile are
// logged and skipped. Field names are case-insensitive and unknown fields
// are ignored.
func ParseTabs(r io.Reader) ([]Tab, error) {
	var tabs []Tab
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := make(map[string]string)
		for _, part := range strings.Split(line, ";;") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			key, value, _ := strings.Cut(part, ":")
			fields[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}

		_, hasCommand := fields["command"]
		_, hasProfile := fields["profile"]
		if !hasCommand && !hasProfile {
			logging.Warn("tabs line needs a command or a profile", "line", lineNo)
			continue
		}

		tabs = append(tabs, Tab{
			Title:   fields["title"],
			Command: fields["command"],
			Profile: fields["profile"],
			Workdir: fields["workdir"],
			Line:    lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tabs: %w", err)
	}
	if len(tabs) == 0 {
		return nil, ErrNoTabs
	}
	return tabs, nil
}

// Resolve returns the profile the tab's session is created from. workdir
// is the command-line working directory; the tab's own workdir wins over
// it.
func (t Tab) Resolve(src ProfileSource, workdir string) *profile.Profile {
	base := SelectProfile(src, t.Profile)

	overlay := profile.New(base)
	overlay.SetHidden(true)
	changed := false

	if t.Command != "" {
		program, args := shellcmd.Split(t.Command)
		overlay.SetProperty(property.Command, property.String(program))
		overlay.SetProperty(property.Arguments, property.StringList(args))
		changed = true
	}
	if t.Title != "" {
		overlay.SetProperty(property.LocalTabTitleFormat, property.String(t.Title))
		overlay.SetProperty(property.RemoteTabTitleFormat, property.String(t.Title))
		changed = true
	}
	if t.Workdir != "" {
		workdir = t.Workdir
	}
	if workdir != "" {
		overlay.SetProperty(property.Directory, property.String(workdir))
		changed = true
	}

	if !changed {
		return base
	}
	return overlay
}
