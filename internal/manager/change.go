package manager

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/session"
	"github.com/firefly-engineering/profilectl/internal/storage"
)

// ChangeProfile sets every entry of changes on p and pushes the changed
// properties to the sessions using p. When persistent is true and p has a
// name and is not hidden, p is saved and its Path updated. A failed save
// returns an error wrapping ErrWriteFailed and leaves Path as it was.
//
// Changing a group changes each member in turn. A group with more than one
// member never passes Name or Path on, matching Group.SetProperty.
func (m *Manager) ChangeProfile(p *profile.Profile, changes *property.Map, persistent bool) error {
	p.SetPropertiesFrom(changes)

	if g := p.AsGroup(); g != nil {
		members := g.Profiles()
		if len(members) > 1 {
			changes = inheritableOnly(changes)
		}
		var errs []error
		for _, member := range members {
			if err := m.ChangeProfile(member, changes, persistent); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	m.applyToSessions(p, changes.Has)
	m.emit(Event{Type: EventProfileChanged, Profile: p})

	if !persistent || p.Name() == "" || p.Hidden() {
		return nil
	}
	path, err := m.SaveProfile(p)
	if err != nil {
		return err
	}
	p.SetProperty(property.Path, property.String(path))
	return nil
}

// ApplyProfile binds s to p and pushes p's values to s. With modifiedOnly,
// only the properties set on p itself are pushed.
func (m *Manager) ApplyProfile(s session.Session, p *profile.Profile, modifiedOnly bool) {
	m.bind(s, p)
	apply(s, p, func(id property.Property) bool {
		return !modifiedOnly || p.IsPropertySet(id)
	})
}

// applyToSessions re-applies the changed properties of p to every session
// whose active profile is p or inherits from it. A property overridden
// between the session's profile and p keeps its override.
func (m *Manager) applyToSessions(p *profile.Profile, changed func(property.Property) bool) {
	for _, b := range m.sessions {
		active := b.active()

		var below []*profile.Profile
		found := false
		for cur := active; cur != nil; cur = cur.Parent() {
			if cur == p {
				found = true
				break
			}
			below = append(below, cur)
		}
		if !found {
			continue
		}

		apply(b.session, active, func(id property.Property) bool {
			if !changed(id) {
				return false
			}
			if len(below) > 0 && !property.Inheritable(id) {
				return false
			}
			for _, q := range below {
				if q.IsPropertySet(id) {
					return false
				}
			}
			return true
		})
	}
}

// apply pushes the properties of p accepted by should onto s.
func apply(s session.Session, p *profile.Profile, should func(property.Property) bool) {
	if should(property.Name) {
		s.SetTitle(session.NameRole, displayName(p))
	}
	if should(property.Command) {
		s.SetProgram(p.Command())
	}
	if should(property.Arguments) {
		s.SetArguments(p.Arguments())
	}
	if should(property.Directory) {
		s.SetInitialWorkingDirectory(p.Directory())
	}
	if should(property.Environment) {
		env := p.Environment()
		env = append(env, "PROFILEHOME="+p.Directory())
		s.SetEnvironment(env)
	}
	if should(property.Icon) {
		s.SetIconName(p.Icon())
	}
	if should(property.KeyBindings) {
		s.SetKeyBindings(p.Property(property.KeyBindings).AsString())
	}
	if should(property.LocalTabTitleFormat) {
		s.SetTabTitleFormat(session.LocalTabTitle, p.Property(property.LocalTabTitleFormat).AsString())
	}
	if should(property.RemoteTabTitleFormat) {
		s.SetTabTitleFormat(session.RemoteTabTitle, p.Property(property.RemoteTabTitleFormat).AsString())
	}
	if should(property.HistoryMode) || should(property.HistorySize) {
		if h, ok := historyOf(p); ok {
			s.SetHistoryType(h)
		} else {
			logging.Warn("unknown history mode", "profile", p.Name(), "mode", p.Property(property.HistoryMode))
		}
	}
	if should(property.FlowControlEnabled) {
		s.SetFlowControlEnabled(p.Property(property.FlowControlEnabled).AsBool())
	}
	if should(property.DefaultEncoding) {
		name := p.Property(property.DefaultEncoding).AsString()
		codec, err := session.ResolveCodec(name)
		if err != nil {
			logging.Warn("keeping session encoding", "profile", p.Name(), "encoding", name, "error", err)
		} else {
			s.SetCodec(codec)
		}
	}
	if should(property.SilenceSeconds) {
		s.SetMonitorSilenceSeconds(p.Property(property.SilenceSeconds).AsInt())
	}
	if should(property.CJKAmbiguousWide) {
		s.SetCJKAmbiguousWide(p.Property(property.CJKAmbiguousWide).AsBool())
	}
}

func historyOf(p *profile.Profile) (session.HistoryType, bool) {
	switch property.HistoryModeValue(p.Property(property.HistoryMode).AsInt()) {
	case property.DisableHistory:
		return session.HistoryNone{}, true
	case property.FixedSizeHistory:
		return session.CompactHistory{Lines: p.Property(property.HistorySize).AsInt()}, true
	case property.UnlimitedHistory:
		return session.FileHistory{}, true
	}
	return nil, false
}

// displayName is p's name, or for a nameless hidden overlay the name of
// the profile it overlays.
func displayName(p *profile.Profile) string {
	for cur := p; cur != nil; cur = cur.Parent() {
		if name := cur.Name(); name != "" || !cur.Hidden() {
			return name
		}
	}
	return ""
}

// ReloadProfile re-reads a loaded profile from disk and applies what
// changed through ChangeProfile without saving. Properties removed from the
// file are unset so the inherited value shows through again. It returns
// the properties that changed.
func (m *Manager) ReloadProfile(path string) ([]property.Property, error) {
	path = filepath.Clean(path)
	p := m.loadedByPath(path)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, path)
	}

	fresh := profile.New(nil)
	parentPath, err := storage.ReaderFor(path).ReadProfile(path, fresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProfileNotFound, path, err)
	}

	changes := property.NewMap()
	var removed []property.Property
	for _, id := range property.All() {
		if id == property.Path {
			continue
		}
		switch {
		case fresh.IsPropertySet(id):
			if v := fresh.Property(id); !p.IsPropertySet(id) || !v.Equal(p.Property(id)) {
				changes.Set(id, v)
			}
		case p.IsPropertySet(id):
			removed = append(removed, id)
		}
	}

	reparented := m.reloadParent(p, parentPath)

	for _, id := range removed {
		p.Unset(id)
	}
	if reparented {
		m.applyToSessions(p, func(property.Property) bool { return true })
	} else if len(removed) > 0 {
		m.applyToSessions(p, func(id property.Property) bool { return slices.Contains(removed, id) })
	}

	if changes.Len() > 0 {
		if err := m.ChangeProfile(p, changes, false); err != nil {
			return nil, err
		}
	} else if reparented || len(removed) > 0 {
		m.emit(Event{Type: EventProfileChanged, Profile: p})
	}

	logging.Debug("profile reloaded", "path", path, "changed", changes.Len(), "removed", len(removed))
	return append(changes.Keys(), removed...), nil
}

// reloadParent points p at the parent named in its file and reports
// whether the parent changed.
func (m *Manager) reloadParent(p *profile.Profile, parentPath string) bool {
	want := m.fallback
	if parentPath != "" {
		parent, err := m.LoadProfile(parentPath)
		if err != nil {
			logging.Warn("parent profile not loaded", "path", p.Path(), "parent", parentPath, "error", err)
			parent = nil
		}
		want = parent
	}
	if want == p.Parent() {
		return false
	}
	if err := p.SetParent(want); err != nil {
		logging.Warn("parent profile rejected", "path", p.Path(), "parent", parentPath, "error", err)
		return false
	}
	return true
}

// inheritableOnly returns the entries of changes that a profile may share
// with others.
func inheritableOnly(changes *property.Map) *property.Map {
	out := property.NewMap()
	changes.Range(func(id property.Property, v property.Value) bool {
		if property.Inheritable(id) {
			out.Set(id, v)
		}
		return true
	})
	return out
}
