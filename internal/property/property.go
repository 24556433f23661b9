package property

import (
	"fmt"
	"strings"
	"sync"
)

// Property identifies a single profile setting.
type Property int

const (
	Path Property = iota
	Name
	Title
	Icon
	Command
	Arguments
	Environment
	Directory
	LocalTabTitleFormat
	RemoteTabTitleFormat
	ShowMenuBar
	ShowTerminalSizeHint
	SaveGeometryOnExit
	TabBarMode
	Font
	ColorScheme
	KeyBindings
	HistoryMode
	HistorySize
	ScrollBarPosition
	BidiRenderingEnabled
	CJKAmbiguousWide
	BlinkingTextEnabled
	FlowControlEnabled
	AllowProgramsToResizeWindow
	BlinkingCursorEnabled
	UseCustomCursorColor
	CursorShape
	CustomCursorColor
	WordCharacters
	TabBarPosition
	NewTabBehavior
	TripleClickMode
	UnderlineLinksEnabled
	DefaultEncoding
	AntiAliasFonts
	BoldIntense
	StartInCurrentSessionDir
	ShowNewAndCloseTabButtons
	SilenceSeconds
	MenuIndex
)

// Section names used in profile files.
const (
	GroupGeneral     = "General"
	GroupKeyboard    = "Keyboard"
	GroupAppearance  = "Appearance"
	GroupScrolling   = "Scrolling"
	GroupTerminal    = "Terminal Features"
	GroupCursor      = "Cursor Options"
	GroupInteraction = "Interaction Options"
	GroupEncoding    = "Encoding Options"
)

// Info describes one registry row.
type Info struct {
	Property Property
	Name     string
	// Group is the section the property is persisted under. Empty means
	// the property is never written by the generic writer.
	Group string
	Type  Kind
}

// table lists every registered name. The first row for a property holds
// its canonical name; later rows are aliases accepted only when parsing.
// Row order is significant: it drives section order on write and the
// iteration order of All.
var table = []Info{
	{Path, "Path", "", KindString},
	{Name, "Name", GroupGeneral, KindString},
	{Title, "Title", "", KindString},
	{Icon, "Icon", GroupGeneral, KindString},
	{Command, "Command", "", KindString},
	{Arguments, "Arguments", "", KindStringList},
	{Environment, "Environment", GroupGeneral, KindStringList},
	{Directory, "Directory", GroupGeneral, KindString},
	{LocalTabTitleFormat, "LocalTabTitleFormat", GroupGeneral, KindString},
	{LocalTabTitleFormat, "tabtitle", "", KindString},
	{RemoteTabTitleFormat, "RemoteTabTitleFormat", GroupGeneral, KindString},
	{ShowMenuBar, "ShowMenuBar", GroupGeneral, KindBool},
	{ShowTerminalSizeHint, "ShowTerminalSizeHint", GroupGeneral, KindBool},
	{SaveGeometryOnExit, "SaveGeometryOnExit", GroupGeneral, KindBool},
	{TabBarMode, "TabBarMode", GroupGeneral, KindInt},
	{TabBarPosition, "TabBarPosition", GroupGeneral, KindInt},
	{NewTabBehavior, "NewTabBehavior", GroupGeneral, KindInt},
	{StartInCurrentSessionDir, "StartInCurrentSessionDir", GroupGeneral, KindBool},
	{ShowNewAndCloseTabButtons, "ShowNewAndCloseTabButtons", GroupGeneral, KindBool},
	{MenuIndex, "MenuIndex", GroupGeneral, KindString},
	{SilenceSeconds, "SilenceSeconds", GroupGeneral, KindInt},

	{Font, "Font", GroupAppearance, KindFont},
	{ColorScheme, "ColorScheme", GroupAppearance, KindString},
	{ColorScheme, "colors", "", KindString},
	{AntiAliasFonts, "AntiAliasFonts", GroupAppearance, KindBool},
	{BoldIntense, "BoldIntense", GroupAppearance, KindBool},

	{KeyBindings, "KeyBindings", GroupKeyboard, KindString},

	{HistoryMode, "HistoryMode", GroupScrolling, KindInt},
	{HistorySize, "HistorySize", GroupScrolling, KindInt},
	{ScrollBarPosition, "ScrollBarPosition", GroupScrolling, KindInt},

	{BlinkingTextEnabled, "BlinkingTextEnabled", GroupTerminal, KindBool},
	{FlowControlEnabled, "FlowControlEnabled", GroupTerminal, KindBool},
	{AllowProgramsToResizeWindow, "AllowProgramsToResizeWindow", GroupTerminal, KindBool},
	{BidiRenderingEnabled, "BidiRenderingEnabled", GroupTerminal, KindBool},
	{CJKAmbiguousWide, "CJKAmbiguousWide", GroupTerminal, KindBool},
	{BlinkingCursorEnabled, "BlinkingCursorEnabled", GroupTerminal, KindBool},

	{UseCustomCursorColor, "UseCustomCursorColor", GroupCursor, KindBool},
	{CursorShape, "CursorShape", GroupCursor, KindInt},
	{CustomCursorColor, "CustomCursorColor", GroupCursor, KindColor},

	{WordCharacters, "WordCharacters", GroupInteraction, KindString},
	{TripleClickMode, "TripleClickMode", GroupInteraction, KindInt},
	{UnderlineLinksEnabled, "UnderlineLinksEnabled", GroupInteraction, KindBool},

	{DefaultEncoding, "DefaultEncoding", GroupEncoding, KindString},
}

type registry struct {
	byName     map[string]Info
	byProperty map[Property]Info
	order      []Property
}

var (
	registryOnce sync.Once
	reg          *registry
)

func registered() *registry {
	registryOnce.Do(func() {
		r := &registry{
			byName:     make(map[string]Info, len(table)),
			byProperty: make(map[Property]Info, len(table)),
		}
		for _, info := range table {
			r.byName[strings.ToLower(info.Name)] = info
			// only the first name of a property is canonical
			if _, ok := r.byProperty[info.Property]; !ok {
				r.byProperty[info.Property] = info
				r.order = append(r.order, info.Property)
			}
		}
		reg = r
	})
	return reg
}

// Lookup returns the property registered under name. The match is
// case-insensitive and includes aliases.
func Lookup(name string) (Property, bool) {
	info, ok := registered().byName[strings.ToLower(name)]
	return info.Property, ok
}

// InfoOf returns the canonical registry row for p.
func InfoOf(p Property) Info {
	return registered().byProperty[p]
}

// All returns every property once, in registry order.
func All() []Property {
	order := registered().order
	out := make([]Property, len(order))
	copy(out, order)
	return out
}

// Rows returns every registry row, aliases included.
func Rows() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// TypeOf returns the declared value type of p.
func TypeOf(p Property) Kind {
	return InfoOf(p).Type
}

// Inheritable reports whether p may be resolved through a parent profile.
// Name and Path always belong to the profile itself.
func Inheritable(p Property) bool {
	return p != Name && p != Path
}

// String returns the canonical on-disk name of p.
func (p Property) String() string {
	if info, ok := registered().byProperty[p]; ok {
		return info.Name
	}
	return fmt.Sprintf("Property(%d)", int(p))
}
