package profile

import (
	"os"

	"github.com/firefly-engineering/profilectl/internal/property"
)

// FallbackPath is the sentinel path of the built-in fallback profile.
const FallbackPath = "FALLBACK/"

// NewFallback returns the built-in profile every loaded profile ultimately
// inherits from. It sets every property so that resolution never ends in
// null for a profile parented on it.
func NewFallback() *Profile {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	home, _ := os.UserHomeDir()

	p := New(nil)
	p.SetHidden(true)

	set := func(id property.Property, v property.Value) { p.SetProperty(id, v) }

	set(property.Path, property.String(FallbackPath))
	set(property.Name, property.String("Shell"))
	set(property.Title, property.String(""))
	set(property.Icon, property.String("utilities-terminal"))
	set(property.Command, property.String(shell))
	set(property.Arguments, property.StringList(nil))
	set(property.Environment, property.StringList([]string{"TERM=xterm"}))
	set(property.Directory, property.String(home))
	set(property.LocalTabTitleFormat, property.String("%D : %n"))
	set(property.RemoteTabTitleFormat, property.String("(%u) %H"))

	set(property.ShowMenuBar, property.Bool(true))
	set(property.ShowTerminalSizeHint, property.Bool(true))
	set(property.SaveGeometryOnExit, property.Bool(true))
	set(property.TabBarMode, property.Int(int(property.AlwaysShowTabBar)))
	set(property.TabBarPosition, property.Int(int(property.TabBarBottom)))
	set(property.NewTabBehavior, property.Int(int(property.PutNewTabAtTheEnd)))
	set(property.StartInCurrentSessionDir, property.Bool(true))
	set(property.ShowNewAndCloseTabButtons, property.Bool(false))
	set(property.MenuIndex, property.String("0"))
	set(property.SilenceSeconds, property.Int(10))

	set(property.Font, property.FontValue(property.FontDesc{Family: "Monospace", PointSize: 10}))
	set(property.ColorScheme, property.String("Linux"))
	set(property.AntiAliasFonts, property.Bool(true))
	set(property.BoldIntense, property.Bool(true))
	set(property.KeyBindings, property.String("default"))

	set(property.HistoryMode, property.Int(int(property.FixedSizeHistory)))
	set(property.HistorySize, property.Int(1000))
	set(property.ScrollBarPosition, property.Int(int(property.ScrollBarRight)))

	set(property.FlowControlEnabled, property.Bool(true))
	set(property.AllowProgramsToResizeWindow, property.Bool(true))
	set(property.BlinkingTextEnabled, property.Bool(true))
	set(property.BlinkingCursorEnabled, property.Bool(false))
	set(property.BidiRenderingEnabled, property.Bool(false))
	set(property.CJKAmbiguousWide, property.Bool(false))

	set(property.CursorShape, property.Int(int(property.BlockCursor)))
	set(property.UseCustomCursorColor, property.Bool(false))
	set(property.CustomCursorColor, property.ColorValue(property.Color{}))

	set(property.WordCharacters, property.String(":@-./_~?&=%+#"))
	set(property.TripleClickMode, property.Int(int(property.SelectWholeLine)))
	set(property.UnderlineLinksEnabled, property.Bool(true))

	set(property.DefaultEncoding, property.String("UTF-8"))

	return p
}
