package property

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FontDesc describes a terminal font as stored on disk:
// "Family,PointSize[,extra...]". Extra fields are carried through untouched.
type FontDesc struct {
	Family    string
	PointSize float64
	Extra     []string
}

// ParseFont decodes a font description. A missing or malformed point size
// yields a zero size together with an error; the family is still returned.
func ParseFont(s string) (FontDesc, error) {
	parts := strings.Split(s, ",")
	f := FontDesc{Family: strings.TrimSpace(parts[0])}
	if len(parts) < 2 {
		return f, fmt.Errorf("font %q has no point size", s)
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return f, fmt.Errorf("font %q: invalid point size: %w", s, err)
	}
	f.PointSize = size
	if len(parts) > 2 {
		f.Extra = slices.Clone(parts[2:])
	}
	return f, nil
}

// String encodes f in the on-disk form.
func (f FontDesc) String() string {
	if f.Family == "" && f.PointSize == 0 && len(f.Extra) == 0 {
		return ""
	}
	out := f.Family + "," + strconv.FormatFloat(f.PointSize, 'g', -1, 64)
	if len(f.Extra) > 0 {
		out += "," + strings.Join(f.Extra, ",")
	}
	return out
}

// Equal compares family, size and extra fields.
func (f FontDesc) Equal(o FontDesc) bool {
	return f.Family == o.Family && f.PointSize == o.PointSize && slices.Equal(f.Extra, o.Extra)
}
