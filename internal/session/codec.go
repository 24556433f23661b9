package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Codec is a resolved text encoding.
type Codec struct {
	// Name is the canonical name of the encoding.
	Name     string
	Encoding encoding.Encoding
}

// ResolveCodec looks name up in the IANA registry first and in the WHATWG
// label index second, which accepts loose labels such as "utf8". Names are
// matched case-insensitively. IANA matches are reported by their preferred
// MIME name.
func ResolveCodec(name string) (Codec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Codec{}, fmt.Errorf("empty encoding name")
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		canonical, err := ianaindex.MIME.Name(enc)
		if err != nil {
			canonical = name
		}
		return Codec{Name: canonical, Encoding: enc}, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return Codec{}, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}
	return Codec{Name: canonical, Encoding: enc}, nil
}
