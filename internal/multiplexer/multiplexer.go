// Package multiplexer renders sessions into a shell script that opens one
// terminal multiplexer tab per session (tmux, wezterm).
//
// The script is only printed; nothing here starts a process.
package multiplexer

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/session"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

// Type identifies a terminal multiplexer backend.
type Type string

const (
	TypeTmux    Type = "tmux"
	TypeWezterm Type = "wezterm"
)

// DefaultSessionName names the multiplexer session when none is given.
const DefaultSessionName = "profilectl"

// Window describes a tab to create.
type Window struct {
	Title   string
	Dir     string
	Env     []string
	Program string
	Args    []string
}

// WindowFromSession captures the state pushed to a recording session. The
// displayed title wins over the profile name.
func WindowFromSession(r *session.Recorder) Window {
	title := r.Titles[session.DisplayedTitleRole]
	if title == "" {
		title = r.Titles[session.NameRole]
	}
	return Window{
		Title:   title,
		Dir:     r.Directory,
		Env:     r.Environment,
		Program: r.Program,
		Args:    r.Arguments,
	}
}

// CommandLine is the window's program and arguments as one shell-quoted
// command line.
func (w Window) CommandLine() string {
	return shellcmd.Join(w.Program, w.Args)
}

// Multiplexer is the interface that every multiplexer backend implements.
type Multiplexer interface {
	// Type returns the multiplexer type identifier.
	Type() Type

	// Script returns a POSIX shell script creating one tab per window in
	// the named session.
	Script(name string, windows []Window) string

	// AttachCommand returns the command attaching to the named session.
	AttachCommand(name string) string
}

// New returns a Multiplexer for the given type.
// Defaults to TypeTmux for empty or unrecognised values.
func New(t Type) Multiplexer {
	switch t {
	case TypeWezterm:
		return &Wezterm{}
	default:
		return &Tmux{}
	}
}

// ParseType validates a multiplexer name.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(s)); t {
	case TypeTmux, TypeWezterm:
		return t, nil
	}
	return "", fmt.Errorf("unknown multiplexer %q (want %s or %s)", s, TypeTmux, TypeWezterm)
}

const scriptHeader = "#!/bin/sh\nset -e\n"
