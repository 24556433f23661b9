// Package session defines the handle through which profiles are pushed onto
// running terminal sessions.
//
// The terminal emulator implements Session. The manager only ever calls
// its setters, and never reads back from it.
package session

import "fmt"

// TabTitleContext selects which tab title format is being set.
type TabTitleContext int

const (
	LocalTabTitle TabTitleContext = iota
	RemoteTabTitle
)

func (c TabTitleContext) String() string {
	if c == RemoteTabTitle {
		return "remote"
	}
	return "local"
}

// TitleRole selects which of the session's titles is being set.
type TitleRole int

const (
	NameRole TitleRole = iota
	DisplayedTitleRole
)

func (r TitleRole) String() string {
	if r == DisplayedTitleRole {
		return "displayed"
	}
	return "name"
}

// Session is a live terminal session.
type Session interface {
	SetProgram(program string)
	SetArguments(args []string)
	SetInitialWorkingDirectory(dir string)
	SetEnvironment(env []string)
	SetIconName(name string)
	SetKeyBindings(id string)
	SetTabTitleFormat(ctx TabTitleContext, format string)
	SetHistoryType(h HistoryType)
	SetFlowControlEnabled(enabled bool)
	SetCodec(c Codec)
	SetMonitorSilenceSeconds(seconds int)
	SetCJKAmbiguousWide(wide bool)
	SetTitle(role TitleRole, title string)
}

// HistoryType is a scrollback strategy.
type HistoryType interface {
	fmt.Stringer
	history()
}

// HistoryNone keeps no scrollback.
type HistoryNone struct{}

// CompactHistory keeps at most Lines lines, discarding the oldest first.
type CompactHistory struct {
	Lines int
}

// FileHistory keeps unlimited scrollback backed by a file.
type FileHistory struct{}

func (HistoryNone) history()    {}
func (CompactHistory) history() {}
func (FileHistory) history()    {}

func (HistoryNone) String() string      { return "none" }
func (h CompactHistory) String() string { return fmt.Sprintf("compact(%d)", h.Lines) }
func (FileHistory) String() string      { return "file" }
