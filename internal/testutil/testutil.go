// Package testutil provides test utilities for command and integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/profilectl/internal/app"
	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/manager"
	"github.com/firefly-engineering/profilectl/internal/profile"
)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Paths   *config.Paths
	App     *app.App
	cleanup func()
}

// NewTestEnv creates an isolated data and config directory pair, an App
// over them, and makes that App the default. Fixtures are not installed;
// call InstallFixtures before the first manager access that needs them.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	paths := config.NewPaths(filepath.Join(tmpDir, "data"), filepath.Join(tmpDir, "config"))

	for _, dir := range []string{paths.WritableProfileDir(), paths.ConfigDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	env := &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
	}
	env.Reload()

	originalDefault := app.Default
	app.SetDefault(env.App)
	env.cleanup = func() {
		app.SetDefault(originalDefault)
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// Reload builds a fresh App over the same directories, as a new process
// would see them.
func (e *TestEnv) Reload() *app.App {
	e.T.Helper()
	a, err := app.New(app.WithPaths(e.Paths))
	if err != nil {
		e.T.Fatalf("app.New() error = %v", err)
	}
	e.App = a
	app.SetDefault(a)
	return a
}

// Manager returns the current App's manager.
func (e *TestEnv) Manager() *manager.Manager {
	return e.App.Manager
}

// InstallFixtures copies every embedded profile and the settings file into
// the environment and reloads the App.
func (e *TestEnv) InstallFixtures() {
	e.T.Helper()

	names, err := ProfileFixtures()
	if err != nil {
		e.T.Fatalf("ProfileFixtures() error = %v", err)
	}
	for _, name := range names {
		if _, err := CopyFixture(name, e.Paths.WritableProfileDir()); err != nil {
			e.T.Fatalf("CopyFixture(%s) error = %v", name, err)
		}
	}
	if _, err := CopyFixture(SettingsFile, e.Paths.ConfigDir); err != nil {
		e.T.Fatalf("CopyFixture(%s) error = %v", SettingsFile, err)
	}
	e.Reload()
}

// WriteProfile writes a profile file into the writable profile directory.
func (e *TestEnv) WriteProfile(name, content string) string {
	e.T.Helper()
	path := filepath.Join(e.Paths.WritableProfileDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write profile %s: %v", name, err)
	}
	return path
}

// LoadProfile loads name through the manager or fails the test.
func (e *TestEnv) LoadProfile(name string) *profile.Profile {
	e.T.Helper()
	p, err := e.Manager().LoadProfile(name)
	if err != nil {
		e.T.Fatalf("LoadProfile(%s) error = %v", name, err)
	}
	return p
}

// ProfileExists reports whether a profile file exists in the writable
// profile directory.
func (e *TestEnv) ProfileExists(name string) bool {
	_, err := os.Stat(filepath.Join(e.Paths.WritableProfileDir(), name))
	return err == nil
}
