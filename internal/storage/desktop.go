package storage

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

const (
	desktopSection = "Desktop Entry"
	schemaSuffix   = ".schema"
)

// DesktopReader reads legacy desktop-entry profiles. They have no parent.
type DesktopReader struct{}

// FindProfiles lists *.desktop files.
func (DesktopReader) FindProfiles(dirs []string) ([]string, error) {
	return findFiles(dirs, config.LegacyProfileSuffix)
}

// ReadProfile maps the legacy keys onto properties. Other keys are ignored.
func (DesktopReader) ReadProfile(path string, p *profile.Profile) (string, error) {
	f, err := loadFile(path)
	if err != nil {
		return "", err
	}
	sec, err := f.GetSection(desktopSection)
	if err != nil {
		return "", fmt.Errorf("%s has no [%s] section", path, desktopSection)
	}

	str := func(key string, id property.Property) {
		if sec.HasKey(key) {
			p.SetProperty(id, property.String(sec.Key(key).Value()))
		}
	}

	str("Name", property.Name)
	str("Icon", property.Icon)
	str("KeyTab", property.KeyBindings)
	str("Cwd", property.Directory)
	str("defaultfont", property.Font)

	if sec.HasKey("Exec") {
		program, args := shellcmd.Split(sec.Key("Exec").Value())
		p.SetProperty(property.Command, property.String(program))
		p.SetProperty(property.Arguments, property.StringList(args))
	}
	if sec.HasKey("Schema") {
		scheme := strings.TrimSuffix(sec.Key("Schema").Value(), schemaSuffix)
		p.SetProperty(property.ColorScheme, property.String(scheme))
	}
	if sec.HasKey("Term") {
		term := sec.Key("Term").Value()
		p.SetProperty(property.Environment, property.StringList([]string{"TERM=" + term}))
	}

	if !p.IsPropertySet(property.Name) {
		p.SetProperty(property.Name, property.String(nameFromPath(path)))
	}
	return "", nil
}
