package manager

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/session"
	"github.com/firefly-engineering/profilectl/internal/settings"
)

// testEnv is a manager over temporary data and config directories.
type testEnv struct {
	paths  *config.Paths
	events []Event
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	return &testEnv{
		paths: config.NewPaths(filepath.Join(root, "data"), filepath.Join(root, "config")),
	}
}

// profilePath is where a profile named name lives in the data directory.
func (e *testEnv) profilePath(name string) string {
	return filepath.Join(e.paths.WritableProfileDir(), name+config.ProfileSuffix)
}

func (e *testEnv) writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := e.profilePath(name)
	writeTestFile(t, path, content)
	return path
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) manager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithPaths(e.paths)}, opts...)
	m, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.Subscribe(func(ev Event) { e.events = append(e.events, ev) })
	return m
}

func (e *testEnv) eventTypes() []EventType {
	var out []EventType
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

func mustLoad(t *testing.T, m *Manager, path string) *profile.Profile {
	t.Helper()
	p, err := m.LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile(%q) error = %v", path, err)
	}
	return p
}

func recorder(t *testing.T, s session.Session) *session.Recorder {
	t.Helper()
	r, ok := s.(*session.Recorder)
	if !ok {
		t.Fatalf("session is %T, want *session.Recorder", s)
	}
	return r
}

func TestNewWithoutDefaultProfileFile(t *testing.T) {
	env := newEnv(t)
	m := env.manager(t)

	if m.DefaultProfile() != m.FallbackProfile() {
		t.Error("DefaultProfile() should be the fallback when Shell.profile is missing")
	}
	if got := m.LoadedProfiles(); len(got) != 1 || got[0] != m.FallbackProfile() {
		t.Errorf("LoadedProfiles() = %v, want only the fallback", got)
	}
}

func TestNewLoadsDefaultProfile(t *testing.T) {
	env := newEnv(t)
	path := env.writeProfile(t, "Shell", "[General]\nName=Shell\nIcon=konsole\n")
	m := env.manager(t)

	def := m.DefaultProfile()
	if def.Path() != path {
		t.Errorf("DefaultProfile().Path() = %q, want %q", def.Path(), path)
	}
	if def.Parent() != m.FallbackProfile() {
		t.Error("default profile should inherit from the fallback")
	}
	if def.Icon() != "konsole" {
		t.Errorf("Icon() = %q, want %q", def.Icon(), "konsole")
	}
}

func TestNewConfiguredDefaultProfile(t *testing.T) {
	env := newEnv(t)
	env.writeProfile(t, "Work", "[General]\nName=Work\n")
	s := settings.New()
	s.DefaultProfile = "Work.profile"

	m := env.manager(t, WithSettings(s))
	if m.DefaultProfile().Name() != "Work" {
		t.Errorf("DefaultProfile().Name() = %q, want %q", m.DefaultProfile().Name(), "Work")
	}
}

func TestNewInvalidSettings(t *testing.T) {
	env := newEnv(t)
	if err := os.MkdirAll(env.paths.ConfigDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.paths.SettingsFile(), []byte("favorites = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(WithPaths(env.paths)); err == nil {
		t.Error("New() should fail on an unparsable settings file")
	}
}

func TestLoadProfileResolution(t *testing.T) {
	env := newEnv(t)
	path := env.writeProfile(t, "Work", "[General]\nName=Work\n")
	m := env.manager(t)
	want := mustLoad(t, m, path)

	tests := []string{
		"Work",
		"Work.profile",
		filepath.Join(config.ProfileSubdir, "Work.profile"),
		path,
	}
	for _, ref := range tests {
		t.Run(ref, func(t *testing.T) {
			got := mustLoad(t, m, ref)
			if got != want {
				t.Errorf("LoadProfile(%q) returned a different instance", ref)
			}
		})
	}
}

func TestLoadProfileSearchPath(t *testing.T) {
	root := t.TempDir()
	system := filepath.Join(root, "system")
	paths := config.NewPaths(filepath.Join(root, "home"), filepath.Join(root, "config"), system)
	sysPath := filepath.Join(system, config.ProfileSubdir, "Ops.profile")
	if err := os.MkdirAll(filepath.Dir(sysPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sysPath, []byte("[General]\nName=Ops\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := New(WithPaths(paths))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p := mustLoad(t, m, "Ops")
	if p.Path() != sysPath {
		t.Errorf("Path() = %q, want %q", p.Path(), sysPath)
	}
}

func TestLoadProfileNotFound(t *testing.T) {
	env := newEnv(t)
	m := env.manager(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing name", "Nope"},
		{"missing absolute", filepath.Join(t.TempDir(), "Nope.profile")},
		{"directory", t.TempDir()},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.LoadProfile(tt.path)
			if !errors.Is(err, ErrProfileNotFound) {
				t.Errorf("LoadProfile(%q) error = %v, want ErrProfileNotFound", tt.path, err)
			}
		})
	}
	if n := len(m.LoadedProfiles()); n != 1 {
		t.Errorf("failed loads registered %d profiles", n-1)
	}
}

func TestLoadProfileFallbackSentinel(t *testing.T) {
	m := newEnv(t).manager(t)
	if got := mustLoad(t, m, profile.FallbackPath); got != m.FallbackProfile() {
		t.Error("LoadProfile(FALLBACK/) should return the fallback profile")
	}
}

func TestLoadProfileParentChain(t *testing.T) {
	env := newEnv(t)
	base := env.writeProfile(t, "Base", "[General]\nName=Base\nIcon=base-icon\n\n[Scrolling]\nHistorySize=5000\n")
	env.writeProfile(t, "Child", "[General]\nName=Child\nParent="+base+"\n\n[Scrolling]\nHistorySize=200\n")
	m := env.manager(t)

	child := mustLoad(t, m, "Child")
	if child.Parent() == nil || child.Parent().Path() != base {
		t.Fatalf("Child parent = %v, want %s", child.Parent(), base)
	}
	if child.Parent().Parent() != m.FallbackProfile() {
		t.Error("Base should inherit from the fallback")
	}
	if got := child.Icon(); got != "base-icon" {
		t.Errorf("Icon() = %q, want inherited %q", got, "base-icon")
	}
	if got := child.Property(property.HistorySize).AsInt(); got != 200 {
		t.Errorf("HistorySize = %d, want 200", got)
	}
	if got := child.Property(property.KeyBindings).AsString(); got != "default" {
		t.Errorf("KeyBindings = %q, want fallback %q", got, "default")
	}
}

func TestLoadProfileParentByName(t *testing.T) {
	env := newEnv(t)
	env.writeProfile(t, "Base", "[General]\nName=Base\n")
	env.writeProfile(t, "Child", "[General]\nName=Child\nParent=Base.profile\n")
	m := env.manager(t)

	child := mustLoad(t, m, "Child")
	if child.Parent() == nil || child.Parent().Name() != "Base" {
		t.Errorf("Child parent = %v, want Base", child.Parent())
	}
}

func TestLoadProfileCycle(t *testing.T) {
	env := newEnv(t)
	a := env.profilePath("A")
	b := env.profilePath("B")
	env.writeProfile(t, "A", "[General]\nName=A\nParent="+b+"\n")
	env.writeProfile(t, "B", "[General]\nName=B\nParent="+a+"\n")
	m := env.manager(t)

	pa := mustLoad(t, m, a)
	pb := pa.Parent()
	if pb == nil || pb.Path() != b {
		t.Fatalf("A parent = %v, want B", pb)
	}
	if pb.Parent() != m.FallbackProfile() {
		t.Error("B should fall back to the fallback profile instead of looping to A")
	}
	if got := mustLoad(t, m, b); got != pb {
		t.Error("B should be cached after loading A")
	}
}

func TestLoadProfileMissingParent(t *testing.T) {
	env := newEnv(t)
	env.writeProfile(t, "Orphan", "[General]\nName=Orphan\nParent=/does/not/exist.profile\n")
	m := env.manager(t)

	p := mustLoad(t, m, "Orphan")
	if p.Parent() != nil {
		t.Errorf("Parent() = %v, want nil for a missing parent", p.Parent())
	}
	if got := p.Property(property.HistorySize); !got.IsNull() {
		t.Errorf("HistorySize = %v, want unset without a parent", got)
	}
}

func TestLoadLegacyProfile(t *testing.T) {
	env := newEnv(t)
	dir := env.paths.WritableProfileDir()
	path := filepath.Join(dir, "old.desktop")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "[Desktop Entry]\nName=Old\nExec=ssh user@host\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m := env.manager(t)

	p := mustLoad(t, m, "old.desktop")
	if p.Command() != "ssh" {
		t.Errorf("Command() = %q, want %q", p.Command(), "ssh")
	}
	if got := p.Arguments(); !slices.Equal(got, []string{"user@host"}) {
		t.Errorf("Arguments() = %v, want [user@host]", got)
	}
}

func TestLoadAllProfiles(t *testing.T) {
	env := newEnv(t)
	env.writeProfile(t, "One", "[General]\nName=One\n")
	env.writeProfile(t, "Two", "[General]\nName=Two\n")
	env.writeProfile(t, "Broken", "[General\n")
	m := env.manager(t)

	if got := len(m.AvailableProfilePaths()); got != 3 {
		t.Errorf("AvailableProfilePaths() has %d entries, want 3", got)
	}

	names := m.AvailableProfileNames()
	slices.Sort(names)
	// the fallback is hidden
	want := []string{"One", "Two"}
	if !slices.Equal(names, want) {
		t.Errorf("AvailableProfileNames() = %v, want %v", names, want)
	}
}

func TestAddProfile(t *testing.T) {
	env := newEnv(t)
	m := env.manager(t)
	p := profile.New(m.FallbackProfile())

	m.AddProfile(p)
	m.AddProfile(p)

	if n := len(m.LoadedProfiles()); n != 2 {
		t.Errorf("LoadedProfiles() has %d entries, want 2", n)
	}
	if got := env.eventTypes(); !slices.Equal(got, []EventType{EventProfileAdded}) {
		t.Errorf("events = %v, want one profile_added", got)
	}
}

func TestSetDefaultProfile(t *testing.T) {
	env := newEnv(t)
	path := env.writeProfile(t, "Work", "[General]\nName=Work\n")
	m := env.manager(t)
	p := mustLoad(t, m, path)

	m.SetDefaultProfile(p)
	if m.DefaultProfile() != p {
		t.Error("DefaultProfile() should return the new default")
	}
	if err := m.SaveSettings(); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	s, err := settings.Load(env.paths.SettingsFile())
	if err != nil {
		t.Fatalf("settings.Load() error = %v", err)
	}
	if s.DefaultProfile != "Work.profile" {
		t.Errorf("DefaultProfile = %q, want %q", s.DefaultProfile, "Work.profile")
	}

	m2 := env.manager(t)
	if m2.DefaultProfile().Path() != path {
		t.Errorf("reloaded default = %q, want %q", m2.DefaultProfile().Path(), path)
	}
}

func TestDeleteProfile(t *testing.T) {
	env := newEnv(t)
	path := env.writeProfile(t, "Work", "[General]\nName=Work\n")
	m := env.manager(t)
	p := mustLoad(t, m, path)
	m.SetDefaultProfile(p)
	m.SetFavorite(p, true)
	m.SetShortcut(p, "Ctrl+Alt+W")
	env.events = nil

	if err := m.DeleteProfile(p); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("profile file should be removed")
	}
	if slices.Contains(m.LoadedProfiles(), p) {
		t.Error("profile should be removed from the index")
	}
	if m.IsFavorite(p) {
		t.Error("profile should no longer be a favorite")
	}
	if m.Shortcut(p) != "" {
		t.Error("profile shortcut should be removed")
	}
	if !p.Hidden() {
		t.Error("deleted profile should be hidden")
	}
	if m.DefaultProfile() != m.FallbackProfile() {
		t.Error("default should move to the first remaining profile")
	}
	if got := env.eventTypes(); got[len(got)-1] != EventProfileRemoved {
		t.Errorf("last event = %v, want profile_removed", got[len(got)-1])
	}
}

func TestDeleteProfileStoredShortcut(t *testing.T) {
	env := newEnv(t)
	path := env.writeProfile(t, "Work", "[General]\nName=Work\n")
	writeTestFile(t, env.paths.SettingsFile(), "[shortcuts]\n\"Ctrl+Alt+W\" = \"Work.profile\"\n")
	m := env.manager(t)
	p := mustLoad(t, m, path)

	if err := m.DeleteProfile(p); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if keys := m.Shortcuts(); len(keys) != 0 {
		t.Errorf("Shortcuts() = %v, want none", keys)
	}
}

func TestDeleteProfileRemoveFails(t *testing.T) {
	env := newEnv(t)
	m := env.manager(t)

	// a non-empty directory cannot be removed with os.Remove
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keep"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	p := profile.New(m.FallbackProfile())
	p.SetProperty(property.Name, property.String("Stuck"))
	p.SetProperty(property.Path, property.String(dir))
	m.AddProfile(p)

	if err := m.DeleteProfile(p); err == nil {
		t.Fatal("DeleteProfile() should fail when the file cannot be removed")
	}
	if !slices.Contains(m.LoadedProfiles(), p) {
		t.Error("profile should stay in the index after a failed delete")
	}
	if p.Hidden() {
		t.Error("profile should stay visible after a failed delete")
	}
}

func TestDeleteFallbackRefused(t *testing.T) {
	m := newEnv(t).manager(t)
	if err := m.DeleteProfile(m.FallbackProfile()); err == nil {
		t.Error("DeleteProfile(fallback) should fail")
	}
}
