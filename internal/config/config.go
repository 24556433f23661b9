package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	// AppName names the per-application directories under the XDG roots.
	AppName = "profilectl"

	// ProfileSubdir holds profile files inside every data directory.
	ProfileSubdir = "profiles"

	// SettingsFileName is the manager metadata file inside ConfigDir.
	SettingsFileName = "profilectlrc.toml"

	// ProfileSuffix is the extension of current-format profile files.
	ProfileSuffix = ".profile"

	// LegacyProfileSuffix is the extension of desktop-entry profile files.
	LegacyProfileSuffix = ".desktop"
)

// Environment variables overriding the XDG layout.
const (
	EnvDataDir   = "PROFILECTL_DATA_DIR"
	EnvConfigDir = "PROFILECTL_CONFIG_DIR"
)

// profileNameRegex validates profile names used to build file names.
// Names must not start with a dot and must not contain path separators or
// control characters. Maximum length is 128 characters.
var profileNameRegex = regexp.MustCompile(`^[^./\\\x00-\x1f][^/\\\x00-\x1f]{0,127}$`)

// ValidateProfileName checks that name can be turned into a profile file
// name inside the writable profile directory.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("invalid profile name %q: leading or trailing whitespace", name)
	}
	if !profileNameRegex.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: must not start with a dot, contain path separators or control characters, and be at most 128 characters", name)
	}
	return nil
}

// Paths holds the configured directories.
type Paths struct {
	// DataHome is the writable data directory.
	DataHome string
	// DataDirs is the profile search path, most preferred first. DataHome
	// is always the first entry.
	DataDirs []string
	// ConfigDir holds the settings file.
	ConfigDir string
}

// DefaultPaths returns the path configuration derived from the environment.
func DefaultPaths() *Paths {
	home, _ := os.UserHomeDir()

	var dataHome string
	var dataDirs []string
	if dir := os.Getenv(EnvDataDir); dir != "" {
		dataHome = dir
		dataDirs = []string{dir}
	} else {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(home, ".local", "share")
		}
		dataHome = filepath.Join(base, AppName)
		dataDirs = []string{dataHome}

		system := os.Getenv("XDG_DATA_DIRS")
		if system == "" {
			system = "/usr/local/share:/usr/share"
		}
		for _, dir := range filepath.SplitList(system) {
			if dir == "" {
				continue
			}
			dataDirs = append(dataDirs, filepath.Join(dir, AppName))
		}
	}

	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			base = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(base, AppName)
	}

	return &Paths{
		DataHome:  dataHome,
		DataDirs:  dataDirs,
		ConfigDir: configDir,
	}
}

// NewPaths returns a layout rooted at explicit directories. Extra data
// directories are searched after dataHome.
func NewPaths(dataHome, configDir string, extraDataDirs ...string) *Paths {
	return &Paths{
		DataHome:  dataHome,
		DataDirs:  append([]string{dataHome}, extraDataDirs...),
		ConfigDir: configDir,
	}
}

// WritableProfileDir is where new and edited profiles are saved.
func (p *Paths) WritableProfileDir() string {
	return filepath.Join(p.DataHome, ProfileSubdir)
}

// ProfileDirs returns the profile directory of every data directory.
func (p *Paths) ProfileDirs() []string {
	dirs := make([]string, len(p.DataDirs))
	for i, d := range p.DataDirs {
		dirs[i] = filepath.Join(d, ProfileSubdir)
	}
	return dirs
}

// SettingsFile is the manager metadata file.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.ConfigDir, SettingsFileName)
}

// SessionsFile stores the sessions saved by "sessions save".
func (p *Paths) SessionsFile() string {
	return filepath.Join(p.DataHome, "sessions.json")
}

// JournalFile stores the change journal.
func (p *Paths) JournalFile() string {
	return filepath.Join(p.DataHome, "journal.jsonl")
}

// Locate finds rel in the data directories and returns the first existing
// regular file. rel is confined to each data directory, so ".." cannot
// reach outside of it.
func (p *Paths) Locate(rel string) (string, bool) {
	for _, dir := range p.DataDirs {
		candidate, err := securejoin.SecureJoin(dir, rel)
		if err != nil {
			continue
		}
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}
