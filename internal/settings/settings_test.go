package settings

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "profilectlrc.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DefaultProfile != DefaultProfile {
		t.Errorf("DefaultProfile = %q, want %q", s.DefaultProfile, DefaultProfile)
	}
	if s.FavoritesDefined() {
		t.Error("favorites should be undefined for a missing file")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profilectlrc.toml")
	content := `default_profile = "Work.profile"
favorites = ["Work.profile", "/abs/Ops.profile"]

[shortcuts]
"Ctrl+Alt+1" = "Work.profile"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DefaultProfile != "Work.profile" {
		t.Errorf("DefaultProfile = %q", s.DefaultProfile)
	}
	if !slices.Equal(s.Favorites, []string{"Work.profile", "/abs/Ops.profile"}) {
		t.Errorf("Favorites = %v", s.Favorites)
	}
	if !s.FavoritesDefined() {
		t.Error("favorites should be defined")
	}
	if got := s.Shortcuts["Ctrl+Alt+1"]; got != "Work.profile" {
		t.Errorf("Shortcuts[Ctrl+Alt+1] = %q", got)
	}
}

func TestLoadWithoutFavorites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profilectlrc.toml")
	if err := os.WriteFile(path, []byte("default_profile = \"X.profile\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.FavoritesDefined() {
		t.Error("favorites should be undefined when the key is absent")
	}
	if s.Shortcuts == nil {
		t.Error("Shortcuts should be initialized")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profilectlrc.toml")
	if err := os.WriteFile(path, []byte("favorites = [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid TOML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profilectlrc.toml")

	s := New()
	s.DefaultProfile = "Dev.profile"
	s.SetFavorites(nil)
	s.Shortcuts["Ctrl+Shift+F1"] = "Dev.profile"

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultProfile != "Dev.profile" {
		t.Errorf("DefaultProfile = %q", loaded.DefaultProfile)
	}
	if !loaded.FavoritesDefined() || len(loaded.Favorites) != 0 {
		t.Errorf("empty favorites should stay defined, got %v (defined %v)", loaded.Favorites, loaded.FavoritesDefined())
	}
	if loaded.Shortcuts["Ctrl+Shift+F1"] != "Dev.profile" {
		t.Errorf("Shortcuts = %v", loaded.Shortcuts)
	}
}
