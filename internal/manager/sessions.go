package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/session"
)

// binding ties a session to the profile it was created from. runtime is
// the overlay holding inline overrides; it is nil until the first one
// arrives.
type binding struct {
	session session.Session
	profile *profile.Profile
	runtime *profile.Profile
}

func (b *binding) active() *profile.Profile {
	if b.runtime != nil {
		return b.runtime
	}
	return b.profile
}

func (m *Manager) binding(s session.Session) *binding {
	for _, b := range m.sessions {
		if b.session == s {
			return b
		}
	}
	return nil
}

// bind makes p the active profile of s. Rebinding to another profile
// discards the runtime overlay.
func (m *Manager) bind(s session.Session, p *profile.Profile) {
	b := m.binding(s)
	if b == nil {
		m.sessions = append(m.sessions, &binding{session: s, profile: p})
		return
	}
	if b.runtime != nil && b.runtime == p {
		return
	}
	b.profile = p
	b.runtime = nil
}

// CreateSession creates a session from p, or from the default profile when
// p is nil, and applies every property of p to it.
func (m *Manager) CreateSession(p *profile.Profile) session.Session {
	if p == nil {
		p = m.defaultProfile
	}
	if !slices.Contains(m.profiles, p) {
		m.AddProfile(p)
	}

	s := m.newSession()
	m.ApplyProfile(s, p, false)
	return s
}

// Sessions returns the bound sessions in creation order.
func (m *Manager) Sessions() []session.Session {
	out := make([]session.Session, len(m.sessions))
	for i, b := range m.sessions {
		out[i] = b.session
	}
	return out
}

// SessionProfile returns the active profile of s: its runtime overlay if
// it has one, otherwise the profile it was bound to. It returns nil for an
// unknown session.
func (m *Manager) SessionProfile(s session.Session) *profile.Profile {
	if b := m.binding(s); b != nil {
		return b.active()
	}
	return nil
}

// SetSessionProfile rebinds s to p and re-applies it.
func (m *Manager) SetSessionProfile(s session.Session, p *profile.Profile) {
	m.bind(s, p)
	m.UpdateSession(s)
}

// UpdateSession applies every property of the active profile of s again.
func (m *Manager) UpdateSession(s session.Session) {
	p := m.defaultProfile
	if b := m.binding(s); b != nil {
		p = b.active()
	}
	m.ApplyProfile(s, p, false)
	m.emit(Event{Type: EventSessionUpdated, Profile: p, Session: s})
}

// SessionTerminated forgets s and its runtime overlay.
func (m *Manager) SessionTerminated(s session.Session) {
	m.sessions = slices.DeleteFunc(m.sessions, func(b *binding) bool { return b.session == s })
}

// ProfileCommandReceived applies an inline command such as
// "Icon=remote;Directory=/srv" to s. The values go into the session's
// runtime overlay, so the profile itself is left untouched, and only the
// properties named in the command are pushed.
func (m *Manager) ProfileCommandReceived(s session.Session, text string) error {
	b := m.binding(s)
	if b == nil {
		return ErrUnknownSession
	}
	m.override(b, profile.ParseCommand(text))
	return nil
}

func (m *Manager) override(b *binding, changes *property.Map) {
	if changes.Len() == 0 {
		return
	}
	if b.runtime == nil {
		b.runtime = profile.New(b.profile)
		b.runtime.SetHidden(true)
	}
	b.runtime.SetPropertiesFrom(changes)
	apply(b.session, b.runtime, changes.Has)
	m.emit(Event{Type: EventSessionUpdated, Profile: b.runtime, Session: b.session})
}

// savedSession is one entry of the sessions file.
type savedSession struct {
	Profile   string            `json:"profile,omitempty"`
	Title     string            `json:"title,omitempty"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// SaveSessions writes the profile path, title and runtime overrides of
// every session to path.
func (m *Manager) SaveSessions(path string) error {
	saved := make([]savedSession, 0, len(m.sessions))
	for _, b := range m.sessions {
		entry := savedSession{
			Profile: b.profile.Path(),
			Title:   displayName(b.active()),
		}
		if b.runtime != nil && !b.runtime.IsEmpty() {
			entry.Overrides = make(map[string]string)
			b.runtime.SetProperties().Range(func(id property.Property, v property.Value) bool {
				entry.Overrides[id.String()] = v.AsString()
				return true
			})
		}
		saved = append(saved, entry)
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	return nil
}

// RestoreSessions creates one session per entry of the file at path. An
// entry whose profile cannot be loaded uses the default profile. A missing
// file restores nothing.
func (m *Manager) RestoreSessions(path string) ([]session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	var saved []savedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse sessions %s: %w", path, err)
	}

	var out []session.Session
	for _, entry := range saved {
		p := m.defaultProfile
		if entry.Profile != "" {
			loaded, err := m.LoadProfile(entry.Profile)
			if err != nil {
				logging.Warn("restoring session with default profile", "profile", entry.Profile, "error", err)
			} else {
				p = loaded
			}
		}

		s := m.CreateSession(p)
		if len(entry.Overrides) > 0 {
			changes := property.NewMap()
			for _, name := range slices.Sorted(maps.Keys(entry.Overrides)) {
				id, ok := property.Lookup(name)
				if !ok {
					continue
				}
				changes.Set(id, property.String(entry.Overrides[name]))
			}
			m.override(m.binding(s), changes)
		}
		if entry.Title != "" {
			s.SetTitle(session.DisplayedTitleRole, entry.Title)
		}
		out = append(out, s)
	}
	return out, nil
}
