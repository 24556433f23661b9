// Package launch turns command-line session options into the profile a new
// session is created from.
//
// Options that change the selected profile (a working directory, inline
// property overrides or a command) produce a hidden overlay profile that
// inherits from the selected one, so the stored profile is never modified.
// Without such options the selected profile is used as is.
package launch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

// ProfileSource looks up profiles by name or path.
type ProfileSource interface {
	LoadProfile(path string) (*profile.Profile, error)
	DefaultProfile() *profile.Profile
}

// Options holds the session options given on the command line.
type Options struct {
	// Profile names the profile to start from. Empty means the default.
	Profile string

	// Workdir overrides the initial working directory.
	Workdir string

	// Overrides are inline property assignments ("Name=Value;Name=Value"),
	// applied in order.
	Overrides []string

	// Command replaces the profile's command. A single element is parsed
	// as a shell command line; more elements are the program followed by
	// its arguments.
	Command []string
}

// SelectProfile loads name, falling back to the default profile when name
// is empty or cannot be loaded.
func SelectProfile(src ProfileSource, name string) *profile.Profile {
	if name == "" {
		return src.DefaultProfile()
	}
	p, err := src.LoadProfile(name)
	if err != nil {
		logging.Warn("using default profile", "profile", name, "error", err)
		return src.DefaultProfile()
	}
	return p
}

// Resolve selects the base profile and applies the overrides to it.
func (o Options) Resolve(src ProfileSource) *profile.Profile {
	return o.Apply(SelectProfile(src, o.Profile))
}

// Apply returns base itself when o changes nothing, otherwise a hidden
// overlay of base carrying the changes.
func (o Options) Apply(base *profile.Profile) *profile.Profile {
	overlay := profile.New(base)
	overlay.SetHidden(true)
	changed := false

	if o.Workdir != "" {
		overlay.SetProperty(property.Directory, property.String(o.Workdir))
		changed = true
	}

	for _, text := range o.Overrides {
		overlay.SetPropertiesFrom(profile.ParseCommand(text))
		changed = true
	}

	if len(o.Command) > 0 {
		program, args := splitCommand(o.Command)
		overlay.SetProperty(property.Command, property.String(program))
		overlay.SetProperty(property.Arguments, property.StringList(args))
		changed = true
	}

	if !changed {
		return base
	}
	return overlay
}

func splitCommand(command []string) (string, []string) {
	var (
		program string
		args    []string
	)
	if len(command) == 1 {
		program, args = shellcmd.Split(command[0])
	} else {
		program, args = command[0], command[1:]
	}

	if rest, ok := strings.CutPrefix(program, "./"); ok {
		if cwd, err := os.Getwd(); err == nil {
			program = filepath.Join(cwd, rest)
		}
	}
	return program, args
}
