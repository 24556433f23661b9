// Package settings persists the manager's metadata: the default profile,
// the favorite profiles and the keyboard shortcuts bound to profiles.
//
// The store is a TOML file:
//
//	default_profile = "Shell.profile"
//	favorites = ["Shell.profile", "/etc/profilectl/Ops.profile"]
//
//	[shortcuts]
//	"Ctrl+Alt+1" = "Work.profile"
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultProfile is the default profile file name when none is configured.
const DefaultProfile = "Shell.profile"

// Settings is the decoded metadata file.
type Settings struct {
	DefaultProfile string            `toml:"default_profile"`
	Favorites      []string          `toml:"favorites"`
	Shortcuts      map[string]string `toml:"shortcuts"`

	// favoritesDefined is false until favorites were loaded from, or
	// saved to, the file. An explicitly empty list counts as defined.
	favoritesDefined bool
}

// New returns settings holding the built-in defaults.
func New() *Settings {
	return &Settings{
		DefaultProfile: DefaultProfile,
		Shortcuts:      make(map[string]string),
	}
}

// FavoritesDefined reports whether the favorites key was ever written.
func (s *Settings) FavoritesDefined() bool {
	return s.favoritesDefined
}

// SetFavorites replaces the favorites list and marks it as defined.
func (s *Settings) SetFavorites(paths []string) {
	s.Favorites = paths
	s.favoritesDefined = true
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	s := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	md, err := toml.Decode(string(data), s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	s.favoritesDefined = md.IsDefined("favorites")
	if s.DefaultProfile == "" {
		s.DefaultProfile = DefaultProfile
	}
	if s.Shortcuts == nil {
		s.Shortcuts = make(map[string]string)
	}
	return s, nil
}

// Save writes s to path, creating the parent directory.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	defer f.Close()

	// favorites must always be present once saved, even when empty, so
	// that it is not mistaken for a never written key on the next load
	out := struct {
		DefaultProfile string            `toml:"default_profile"`
		Favorites      []string          `toml:"favorites"`
		Shortcuts      map[string]string `toml:"shortcuts"`
	}{
		DefaultProfile: s.DefaultProfile,
		Favorites:      s.Favorites,
		Shortcuts:      s.Shortcuts,
	}
	if out.Favorites == nil {
		out.Favorites = []string{}
	}

	if err := toml.NewEncoder(f).Encode(out); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	s.favoritesDefined = true
	return f.Close()
}
