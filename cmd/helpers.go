package cmd

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/app"
	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/manager"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

// paths returns the default paths configuration.
func paths() *config.Paths {
	return app.Default.Paths
}

// mgr returns the application's session manager.
func mgr() *manager.Manager {
	return app.Default.Manager
}

// findProfile loads name as a file reference first and falls back to
// matching the display name of every visible profile. It returns a
// ProfileNotFound error when neither works.
func findProfile(name string) (*profile.Profile, error) {
	m := mgr()
	p, err := m.LoadProfile(name)
	if err == nil {
		return p, nil
	}

	m.LoadAllProfiles()
	for _, candidate := range m.LoadedProfiles() {
		if !candidate.Hidden() && candidate.Name() == name {
			return candidate, nil
		}
	}
	return nil, errors.ProfileNotFound(name, err)
}

// visibleProfiles loads every profile and returns the visible ones in menu
// order.
func visibleProfiles() []*profile.Profile {
	m := mgr()
	m.LoadAllProfiles()

	var out []*profile.Profile
	for _, p := range m.LoadedProfiles() {
		if !p.Hidden() {
			out = append(out, p)
		}
	}
	return manager.SortProfiles(out)
}

// saveSettings persists the default profile, favorites and shortcuts.
func saveSettings() error {
	if err := mgr().SaveSettings(); err != nil {
		return errors.WriteFailed("settings", err)
	}
	return nil
}

// changeProfile applies changes to p and maps write failures to the
// WriteFailed exit code.
func changeProfile(p *profile.Profile, changes *property.Map, persistent bool) error {
	if err := mgr().ChangeProfile(p, changes, persistent); err != nil {
		if errors.Is(err, manager.ErrWriteFailed) {
			return errors.WriteFailed("profile "+p.Name(), err)
		}
		return err
	}
	return nil
}

// parseOverrides merges inline property commands into one change set.
func parseOverrides(texts []string) *property.Map {
	changes := property.NewMap()
	for _, text := range texts {
		profile.ParseCommand(text).Range(func(id property.Property, v property.Value) bool {
			changes.Set(id, v)
			return true
		})
	}
	return changes
}

// newProfileRequest describes a profile to create.
type newProfileRequest struct {
	Name      string
	Parent    *profile.Profile
	Command   string
	Directory string
	Overrides []string
}

// createProfile adds a new named profile and saves it.
func createProfile(req newProfileRequest) (*profile.Profile, error) {
	m := mgr()

	if err := config.ValidateProfileName(req.Name); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if _, err := m.LoadProfile(req.Name); err == nil {
		return nil, errors.InvalidArgument(fmt.Sprintf("profile %s already exists", req.Name))
	}

	parent := req.Parent
	if parent == nil {
		parent = m.FallbackProfile()
	}

	changes := parseOverrides(req.Overrides)
	changes.Set(property.Name, property.String(req.Name))
	if command := strings.TrimSpace(req.Command); command != "" {
		program, args := shellcmd.Split(command)
		changes.Set(property.Command, property.String(program))
		changes.Set(property.Arguments, property.StringList(args))
	}
	if req.Directory != "" {
		changes.Set(property.Directory, property.String(req.Directory))
	}

	p := profile.New(parent)
	p.SetProperty(property.Name, property.String(req.Name))
	m.AddProfile(p)
	if err := changeProfile(p, changes, true); err != nil {
		if derr := m.DeleteProfile(p); derr != nil {
			logWarning("Failed to drop unsaved profile %s: %v", req.Name, derr)
		}
		return nil, err
	}
	return p, nil
}

// displayName is the profile name, or its path when it has none. Nameless
// overlays report the profile they overlay.
func displayName(p *profile.Profile) string {
	for cur := p; cur != nil; cur = cur.Parent() {
		if name := cur.Name(); name != "" {
			return name
		}
		if !cur.Hidden() {
			return cur.Path()
		}
	}
	return ""
}
