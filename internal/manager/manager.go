package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/session"
	"github.com/firefly-engineering/profilectl/internal/settings"
	"github.com/firefly-engineering/profilectl/internal/storage"
)

var (
	// ErrProfileNotFound is returned when a profile file cannot be found
	// or read.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNotLoaded is returned when an operation needs a profile that is
	// not in the index.
	ErrNotLoaded = errors.New("profile not loaded")

	// ErrWriteFailed is returned when a profile cannot be saved.
	ErrWriteFailed = errors.New("failed to write profile")

	// ErrShortcutNotFound is returned for key sequences without a binding.
	ErrShortcutNotFound = errors.New("no profile bound to shortcut")

	// ErrUnknownSession is returned for sessions the manager did not bind.
	ErrUnknownSession = errors.New("unknown session")
)

// Manager loads profiles and applies them to sessions.
type Manager struct {
	paths      *config.Paths
	writer     storage.Writer
	settings   *settings.Settings
	newSession func() session.Session

	fallback       *profile.Profile
	defaultProfile *profile.Profile
	profiles       []*profile.Profile
	allLoaded      bool

	favorites       []*profile.Profile
	loadedFavorites bool

	shortcuts map[string]*shortcut

	sessions []*binding

	subscribers []func(Event)
}

// Option configures a Manager.
type Option func(*Manager)

// WithPaths sets the filesystem layout.
func WithPaths(paths *config.Paths) Option {
	return func(m *Manager) {
		m.paths = paths
	}
}

// WithWriter sets the writer used to save profiles.
func WithWriter(w storage.Writer) Option {
	return func(m *Manager) {
		m.writer = w
	}
}

// WithSettings uses s instead of loading the settings file.
func WithSettings(s *settings.Settings) Option {
	return func(m *Manager) {
		m.settings = s
	}
}

// WithSessionFactory sets how CreateSession makes new sessions.
func WithSessionFactory(fn func() session.Session) Option {
	return func(m *Manager) {
		m.newSession = fn
	}
}

// New creates a manager. The fallback profile is registered first and is
// the default until the configured default profile loads. New only fails
// when the settings file exists but cannot be parsed.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		shortcuts: make(map[string]*shortcut),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.paths == nil {
		m.paths = config.DefaultPaths()
	}
	if m.writer == nil {
		m.writer = storage.NewINIWriter(m.paths)
	}
	if m.newSession == nil {
		m.newSession = func() session.Session { return session.NewRecorder() }
	}
	if m.settings == nil {
		s, err := settings.Load(m.paths.SettingsFile())
		if err != nil {
			return nil, err
		}
		m.settings = s
	}

	m.fallback = profile.NewFallback()
	m.AddProfile(m.fallback)

	if name := m.settings.DefaultProfile; name != "" {
		p, err := m.LoadProfile(name)
		if err != nil {
			logging.Debug("default profile not available, using fallback", "profile", name, "error", err)
		} else {
			m.defaultProfile = p
		}
	}

	m.loadShortcuts()
	return m, nil
}

// FallbackProfile returns the built-in profile.
func (m *Manager) FallbackProfile() *profile.Profile {
	return m.fallback
}

// DefaultProfile returns the profile used when none is requested.
func (m *Manager) DefaultProfile() *profile.Profile {
	return m.defaultProfile
}

// SetDefaultProfile makes p the default, adding it to the index if needed.
// The choice is persisted by SaveSettings.
func (m *Manager) SetDefaultProfile(p *profile.Profile) {
	if !slices.Contains(m.profiles, p) {
		m.AddProfile(p)
	}
	m.defaultProfile = p

	path, err := m.pathOf(p)
	if err != nil {
		logging.Warn("default profile has no file name", "profile", p.Name(), "error", err)
		return
	}
	m.settings.DefaultProfile = m.storedName(path)
}

// LoadedProfiles returns the index in insertion order.
func (m *Manager) LoadedProfiles() []*profile.Profile {
	return slices.Clone(m.profiles)
}

// AddProfile registers p. The first profile added becomes the default.
func (m *Manager) AddProfile(p *profile.Profile) {
	if len(m.profiles) == 0 {
		m.defaultProfile = p
	}
	if slices.Contains(m.profiles, p) {
		return
	}
	m.profiles = append(m.profiles, p)
	m.emit(Event{Type: EventProfileAdded, Profile: p})
}

// DeleteProfile removes p's file, if any, and then drops p from the index,
// the favorites and the shortcuts. When the file cannot be removed nothing
// else is changed. Deleting the default profile makes the first remaining
// profile the default.
func (m *Manager) DeleteProfile(p *profile.Profile) error {
	if p == m.fallback {
		return fmt.Errorf("the fallback profile cannot be deleted")
	}

	// a binding still stored by file name can only be matched while the
	// file exists
	if keys := m.Shortcut(p); keys != "" {
		m.shortcuts[keys].profile = p
	}

	if path := p.Path(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove profile %s: %w", path, err)
			}
		}
	}

	wasDefault := p == m.defaultProfile

	m.SetFavorite(p, false)
	m.SetShortcut(p, "")
	m.profiles = slices.DeleteFunc(m.profiles, func(q *profile.Profile) bool { return q == p })
	p.SetHidden(true)

	if wasDefault && len(m.profiles) > 0 {
		m.SetDefaultProfile(m.profiles[0])
	}

	m.emit(Event{Type: EventProfileRemoved, Profile: p})
	return nil
}

// LoadProfile loads the profile at path, or returns the already loaded
// instance for the same file.
func (m *Manager) LoadProfile(path string) (*profile.Profile, error) {
	return m.loadProfile(path, make(map[string]bool))
}

// loadProfile carries the set of paths currently being loaded down the
// parent chain.
func (m *Manager) loadProfile(path string, inFlight map[string]bool) (*profile.Profile, error) {
	if path == profile.FallbackPath {
		return m.fallback, nil
	}

	resolved, err := m.resolvePath(path)
	if err != nil {
		return nil, err
	}
	if p := m.loadedByPath(resolved); p != nil {
		return p, nil
	}

	if inFlight[resolved] {
		logging.Warn("profile is its own ancestor, using fallback as parent", "path", resolved)
		return m.fallback, nil
	}
	inFlight[resolved] = true
	defer delete(inFlight, resolved)

	p := profile.New(m.fallback)
	p.SetProperty(property.Path, property.String(resolved))

	parentPath, err := storage.ReaderFor(resolved).ReadProfile(resolved, p)
	if err != nil {
		logging.Warn("failed to load profile", "path", resolved, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrProfileNotFound, path, err)
	}

	if parentPath != "" {
		parent, err := m.loadProfile(parentPath, inFlight)
		if err != nil {
			logging.Warn("parent profile not loaded", "path", resolved, "parent", parentPath, "error", err)
			parent = nil
		}
		if err := p.SetParent(parent); err != nil {
			logging.Warn("parent profile rejected", "path", resolved, "parent", parentPath, "error", err)
		}
	}

	m.AddProfile(p)
	return p, nil
}

// resolvePath turns a profile reference into the path of an existing file.
func (m *Manager) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrProfileNotFound)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrProfileNotFound, path)
	}

	if ext := filepath.Ext(path); ext != config.ProfileSuffix && ext != config.LegacyProfileSuffix {
		path += config.ProfileSuffix
	}
	if filepath.Dir(path) == "." {
		path = filepath.Join(config.ProfileSubdir, filepath.Base(path))
	}

	if !filepath.IsAbs(path) {
		located, ok := m.paths.Locate(path)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		path = located
	}
	return filepath.Clean(path), nil
}

func (m *Manager) loadedByPath(path string) *profile.Profile {
	for _, p := range m.profiles {
		if p.Path() == path {
			return p
		}
	}
	return nil
}

// LoadAllProfiles loads every profile file found in the data directories.
// Files that fail to load are logged and skipped.
func (m *Manager) LoadAllProfiles() {
	if m.allLoaded {
		return
	}
	for _, path := range m.AvailableProfilePaths() {
		if _, err := m.LoadProfile(path); err != nil {
			logging.Warn("skipping profile", "path", path, "error", err)
		}
	}
	m.allLoaded = true
}

// AvailableProfilePaths lists the profile files of every supported format.
func (m *Manager) AvailableProfilePaths() []string {
	var out []string
	for _, r := range storage.Readers() {
		paths, err := r.FindProfiles(m.paths.ProfileDirs())
		if err != nil {
			logging.Warn("failed to list profiles", "error", err)
			continue
		}
		out = append(out, paths...)
	}
	return out
}

// AvailableProfileNames loads every profile and returns the names of the
// visible ones.
func (m *Manager) AvailableProfileNames() []string {
	m.LoadAllProfiles()

	var names []string
	for _, p := range m.profiles {
		if !p.Hidden() {
			names = append(names, p.Name())
		}
	}
	return names
}

// SaveProfile writes p through the configured writer and returns the path
// written.
func (m *Manager) SaveProfile(p *profile.Profile) (string, error) {
	path, err := m.writer.Path(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := m.writer.WriteProfile(path, p); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	logging.Debug("profile saved", "profile", p.Name(), "path", path)
	return path, nil
}

// pathOf is p's file path, or where the writer would save it.
func (m *Manager) pathOf(p *profile.Profile) (string, error) {
	if path := p.Path(); path != "" {
		return path, nil
	}
	return m.writer.Path(p)
}

// storedName is the form of path kept in the settings file: the bare file
// name when the search path resolves it back to path, the full path
// otherwise.
func (m *Manager) storedName(path string) string {
	if path == profile.FallbackPath {
		return path
	}
	base := filepath.Base(path)
	if located, ok := m.paths.Locate(filepath.Join(config.ProfileSubdir, base)); ok && located == path {
		return base
	}
	return path
}
