package manager

import (
	"fmt"
	"maps"
	"slices"

	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/settings"
)

// FindFavorites returns the favorite profiles, loading them on first use.
func (m *Manager) FindFavorites() []*profile.Profile {
	m.loadFavorites()
	return slices.Clone(m.favorites)
}

// SortedFavorites returns the favorites in menu order.
func (m *Manager) SortedFavorites() []*profile.Profile {
	return SortProfiles(m.FindFavorites())
}

// IsFavorite reports whether p is a favorite.
func (m *Manager) IsFavorite(p *profile.Profile) bool {
	m.loadFavorites()
	return slices.Contains(m.favorites, p)
}

// SetFavorite adds p to or removes it from the favorites. p is added to the
// index if needed. An event is emitted only when the state changes.
func (m *Manager) SetFavorite(p *profile.Profile, favorite bool) {
	m.loadFavorites()
	if !slices.Contains(m.profiles, p) {
		m.AddProfile(p)
	}

	has := slices.Contains(m.favorites, p)
	switch {
	case favorite && !has:
		m.favorites = append(m.favorites, p)
	case !favorite && has:
		m.favorites = slices.DeleteFunc(m.favorites, func(q *profile.Profile) bool { return q == p })
	default:
		return
	}
	m.emit(Event{Type: EventFavoriteChanged, Profile: p, Favorite: favorite})
}

func (m *Manager) loadFavorites() {
	if m.loadedFavorites {
		return
	}
	m.loadedFavorites = true

	names := []string{settings.DefaultProfile}
	if m.settings.FavoritesDefined() {
		names = m.settings.Favorites
	}
	for _, name := range names {
		p, err := m.LoadProfile(name)
		if err != nil {
			logging.Debug("favorite profile not loaded", "profile", name, "error", err)
			continue
		}
		if !slices.Contains(m.favorites, p) {
			m.favorites = append(m.favorites, p)
		}
	}
}

// shortcut is a key binding. profile stays nil until the binding is first
// used.
type shortcut struct {
	path    string
	profile *profile.Profile
}

func (m *Manager) loadShortcuts() {
	for keys, path := range m.settings.Shortcuts {
		m.shortcuts[keys] = &shortcut{path: path}
	}
}

// Shortcuts returns the bound key sequences, sorted.
func (m *Manager) Shortcuts() []string {
	return slices.Sorted(maps.Keys(m.shortcuts))
}

// FindByShortcut returns the profile bound to keys, loading it on first
// use. A binding whose profile cannot be loaded is dropped.
func (m *Manager) FindByShortcut(keys string) (*profile.Profile, error) {
	sc, ok := m.shortcuts[keys]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrShortcutNotFound, keys)
	}
	if sc.profile == nil {
		p, err := m.LoadProfile(sc.path)
		if err != nil {
			logging.Warn("dropping shortcut", "shortcut", keys, "path", sc.path, "error", err)
			delete(m.shortcuts, keys)
			return nil, err
		}
		sc.profile = p
	}
	return sc.profile, nil
}

// SetShortcut binds keys to p, replacing p's previous binding. Empty keys
// only remove the previous binding.
func (m *Manager) SetShortcut(p *profile.Profile, keys string) {
	existing := m.Shortcut(p)
	if existing != "" {
		delete(m.shortcuts, existing)
	}
	if keys == "" {
		if existing != "" {
			m.emit(Event{Type: EventShortcutChanged, Profile: p})
		}
		return
	}

	m.shortcuts[keys] = &shortcut{path: p.Path(), profile: p}
	m.emit(Event{Type: EventShortcutChanged, Profile: p, Shortcut: keys})
}

// Shortcut returns the key sequence bound to p, or "".
func (m *Manager) Shortcut(p *profile.Profile) string {
	for _, keys := range m.Shortcuts() {
		sc := m.shortcuts[keys]
		if sc.profile == p {
			return keys
		}
		if sc.profile == nil && p.Path() != "" && m.refersTo(sc.path, p) {
			return keys
		}
	}
	return ""
}

// refersTo reports whether a stored profile reference names p's file.
func (m *Manager) refersTo(ref string, p *profile.Profile) bool {
	if ref == p.Path() {
		return true
	}
	resolved, err := m.resolvePath(ref)
	return err == nil && resolved == p.Path()
}

// SaveSettings writes the default profile, the shortcuts and, once they
// have been loaded, the favorites to the settings file.
func (m *Manager) SaveSettings() error {
	if m.defaultProfile != nil {
		if path, err := m.pathOf(m.defaultProfile); err == nil {
			m.settings.DefaultProfile = m.storedName(path)
		}
	}

	shortcuts := make(map[string]string, len(m.shortcuts))
	for keys, sc := range m.shortcuts {
		path := sc.path
		if sc.profile != nil && sc.profile.Path() != "" {
			path = sc.profile.Path()
		}
		if path == "" {
			logging.Warn("shortcut profile was never saved", "shortcut", keys)
			continue
		}
		shortcuts[keys] = m.storedName(path)
	}
	m.settings.Shortcuts = shortcuts

	if m.loadedFavorites {
		favorites := []string{}
		for _, p := range m.favorites {
			if p.Path() == "" {
				logging.Warn("favorite profile was never saved", "profile", p.Name())
				continue
			}
			favorites = append(favorites, m.storedName(p.Path()))
		}
		m.settings.SetFavorites(favorites)
	}

	if err := m.settings.Save(m.paths.SettingsFile()); err != nil {
		return err
	}
	logging.Debug("settings saved", "path", m.paths.SettingsFile())
	return nil
}
