package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"gopkg.in/ini.v1"

	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

// Keys of the General section with special handling.
const (
	keyParent  = "Parent"
	keyCommand = "Command"
)

// INIReader reads current-format profiles.
type INIReader struct{}

// FindProfiles lists *.profile files.
func (INIReader) FindProfiles(dirs []string) ([]string, error) {
	return findFiles(dirs, config.ProfileSuffix)
}

// ReadProfile reads every known key of every section into p. Unknown keys
// are ignored and values are converted to the declared property type.
func (INIReader) ReadProfile(path string, p *profile.Profile) (string, error) {
	f, err := loadFile(path)
	if err != nil {
		return "", err
	}

	var parent string
	for _, sec := range f.Sections() {
		for _, key := range sec.Keys() {
			name, value := key.Name(), unquoteValue(key.Value())
			if sec.Name() == property.GroupGeneral {
				switch name {
				case keyParent:
					parent = value
					continue
				case keyCommand:
					program, args := shellcmd.Split(value)
					p.SetProperty(property.Command, property.String(program))
					p.SetProperty(property.Arguments, property.StringList(args))
					continue
				}
			}

			id, ok := property.Lookup(name)
			if !ok || id == property.Path {
				logging.Debug("ignoring profile key", "path", path, "section", sec.Name(), "key", name)
				continue
			}
			p.SetProperty(id, property.Parse(property.TypeOf(id), value))
		}
	}

	if !p.IsPropertySet(property.Name) {
		p.SetProperty(property.Name, property.String(nameFromPath(path)))
	}
	return parent, nil
}

// INIWriter writes current-format profiles into Dir.
type INIWriter struct {
	// Dir is the writable profile directory.
	Dir string
}

// NewINIWriter returns a writer saving into the writable profile
// directory of paths.
func NewINIWriter(paths *config.Paths) INIWriter {
	return INIWriter{Dir: paths.WritableProfileDir()}
}

// Path keeps the profile's current path when it is a current-format file
// inside Dir and otherwise returns "<Dir>/<Name>.profile". Saving a legacy
// profile therefore converts it to a new file next to the old one.
func (w INIWriter) Path(p *profile.Profile) (string, error) {
	if current := p.Path(); current != "" && filepath.IsAbs(current) &&
		filepath.Ext(current) == config.ProfileSuffix && within(w.Dir, current) {
		return current, nil
	}

	name := p.Name()
	if name == "" {
		return "", fmt.Errorf("profile has no name")
	}
	path, err := securejoin.SecureJoin(w.Dir, name+config.ProfileSuffix)
	if err != nil {
		return "", fmt.Errorf("invalid profile name %q: %w", name, err)
	}
	return path, nil
}

// WriteProfile writes the locally set properties of p to path. Properties
// without a group are not written, except Command and Arguments which are
// merged into General.Command.
func (w INIWriter) WriteProfile(path string, p *profile.Profile) error {
	f := ini.Empty(loadOptions)

	general, err := f.NewSection(property.GroupGeneral)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	if parent := p.Parent(); parent != nil && parent.Path() != "" {
		if _, err := general.NewKey(keyParent, quoteValue(parent.Path())); err != nil {
			return fmt.Errorf("failed to write parent: %w", err)
		}
	}
	if p.IsPropertySet(property.Command) || p.IsPropertySet(property.Arguments) {
		line := shellcmd.Join(p.Command(), p.Arguments())
		if _, err := general.NewKey(keyCommand, quoteValue(line)); err != nil {
			return fmt.Errorf("failed to write command: %w", err)
		}
	}

	for _, id := range property.All() {
		info := property.InfoOf(id)
		if info.Group == "" || !p.IsPropertySet(id) {
			continue
		}
		v := p.Property(id)
		if v.IsNull() {
			continue
		}
		sec := f.Section(info.Group)
		if _, err := sec.NewKey(info.Name, quoteValue(v.AsString())); err != nil {
			return fmt.Errorf("failed to write %s: %w", info.Name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}
	return nil
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
