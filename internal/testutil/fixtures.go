package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// Fixture names.
const (
	ShellProfile  = "Shell.profile"
	WorkProfile   = "Work.profile"
	LegacyProfile = "Legacy.desktop"
	SettingsFile  = "profilectlrc.toml"
	TabsFile      = "tabs.txt"
)

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// ProfileFixtures lists the embedded profile files of both formats.
func ProfileFixtures() ([]string, error) {
	var names []string
	for _, pattern := range []string{"fixtures/*.profile", "fixtures/*.desktop"} {
		matches, err := fs.Glob(fixturesFS, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			names = append(names, filepath.Base(m))
		}
	}
	return names, nil
}

// CopyFixture writes fixture name to dir and returns the new path.
func CopyFixture(name, dir string) (string, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
