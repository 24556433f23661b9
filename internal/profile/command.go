package profile

import (
	"strings"

	"github.com/firefly-engineering/profilectl/internal/property"
)

// ParseCommand decodes an in-band override string of the form
// "Name=Value;Name=Value". Names match registered names and aliases
// case-insensitively. Inside a value "\;" is a literal semicolon and "\\" a
// literal backslash. Segments without a name, a value, or a known property
// are skipped. Values are returned as raw strings.
func ParseCommand(input string) *property.Map {
	changes := property.NewMap()
	for _, segment := range splitSegments(input) {
		name, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || value == "" {
			continue
		}
		id, known := property.Lookup(name)
		if !known {
			continue
		}
		changes.Set(id, property.String(value))
	}
	return changes
}

func splitSegments(input string) []string {
	var (
		segments []string
		cur      strings.Builder
	)
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '\\' && i+1 < len(input) && (input[i+1] == ';' || input[i+1] == '\\'):
			i++
			cur.WriteByte(input[i])
		case c == ';':
			segments = append(segments, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}
	return segments
}
