package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/profile"
)

// Reader loads profile files of one format.
type Reader interface {
	// FindProfiles lists the profile files of this format in dirs.
	// Missing directories are skipped.
	FindProfiles(dirs []string) ([]string, error)

	// ReadProfile fills p from the file at path and returns the path of
	// the parent profile, or "" when there is none.
	ReadProfile(path string, p *profile.Profile) (parentPath string, err error)
}

// Writer saves profiles.
type Writer interface {
	// Path returns where p would be saved. It never touches the file.
	Path(p *profile.Profile) (string, error)

	// WriteProfile saves p to path.
	WriteProfile(path string, p *profile.Profile) error
}

// ReaderFor returns the reader for the format of path.
func ReaderFor(path string) Reader {
	if strings.HasSuffix(path, config.LegacyProfileSuffix) {
		return DesktopReader{}
	}
	return INIReader{}
}

// Readers returns one reader per supported format.
func Readers() []Reader {
	return []Reader{INIReader{}, DesktopReader{}}
}

// loadOptions keeps values verbatim: '#' and ';' are common in commands
// and word character lists, and quotes and trailing backslashes belong to
// the shell command line. Lines that are not key=value pairs are skipped.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	SkipUnrecognizableLines: true,
}

func init() {
	// Plain Key=Value lines, as written by other terminal emulators.
	ini.PrettyFormat = false
}

// quoteValue wraps v in double quotes when the file would otherwise lose
// its edge whitespace, or when unquoteValue would strip quotes v owns.
func quoteValue(v string) string {
	if needsQuotes(v) {
		return `"` + v + `"`
	}
	return v
}

// unquoteValue reverses quoteValue.
func unquoteValue(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' && needsQuotes(v[1:len(v)-1]) {
		return v[1 : len(v)-1]
	}
	return v
}

func needsQuotes(v string) bool {
	if v != strings.TrimSpace(v) {
		return true
	}
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' && needsQuotes(v[1:len(v)-1])
}

func loadFile(path string) (*ini.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// findFiles lists files with suffix in dirs. A file name found in an
// earlier directory shadows the same name in later ones.
func findFiles(dirs []string, suffix string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read profile directory: %w", err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, suffix) || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out, nil
}

// nameFromPath derives a profile name from its file name.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
