package manager

import (
	"cmp"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
)

// SortProfiles returns list in menu order: profiles with a positive menu
// index first, by index, then the rest by name in the collation order of
// the user's locale. The fallback profile is dropped. Menu indexes are
// renumbered from 1 in memory.
func SortProfiles(list []*profile.Profile) []*profile.Profile {
	return sortProfiles(list, localeTag())
}

func sortProfiles(list []*profile.Profile, tag language.Tag) []*profile.Profile {
	var indexed, unindexed []*profile.Profile
	for _, p := range list {
		if p.Path() == profile.FallbackPath {
			continue
		}
		if p.MenuIndexAsInt() > 0 {
			indexed = append(indexed, p)
		} else {
			unindexed = append(unindexed, p)
		}
	}

	slices.SortStableFunc(indexed, func(a, b *profile.Profile) int {
		return cmp.Compare(a.MenuIndexAsInt(), b.MenuIndexAsInt())
	})

	coll := collate.New(tag)
	slices.SortStableFunc(unindexed, func(a, b *profile.Profile) int {
		return coll.CompareString(a.Name(), b.Name())
	})

	for i, p := range indexed {
		p.SetProperty(property.MenuIndex, property.String(strconv.Itoa(i+1)))
	}
	for i, p := range unindexed {
		p.SetProperty(property.MenuIndex, property.String(strconv.Itoa(len(indexed)+i+1)))
	}
	return append(indexed, unindexed...)
}

// localeTag reads the collation locale from the environment the way the C
// library does. Unset, "C" and unparsable locales use the root collation.
func localeTag() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		return parseLocale(v)
	}
	return language.Und
}

// parseLocale converts "de_DE.UTF-8@euro" to a language tag.
func parseLocale(v string) language.Tag {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "C" || v == "POSIX" || v == "" {
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}
