package profile

import (
	"slices"

	"github.com/firefly-engineering/profilectl/internal/property"
)

// Group is a hidden profile standing in for several member profiles, for
// example when editing the settings of multiple profiles at once.
//
// Members are not owned by the group and must outlive it. The group does
// not observe its members: call UpdateValues after changing membership or
// member values.
type Group struct {
	*Profile
	members []*Profile
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	g := &Group{Profile: New(nil)}
	g.Profile.hidden = true
	g.Profile.group = g
	return g
}

// AddProfile appends p to the member list.
func (g *Group) AddProfile(p *Profile) {
	g.members = append(g.members, p)
}

// RemoveProfile drops p from the member list.
func (g *Group) RemoveProfile(p *Profile) {
	g.members = slices.DeleteFunc(g.members, func(m *Profile) bool { return m == p })
}

// Profiles returns the members in the order they were added.
func (g *Group) Profiles() []*Profile {
	return slices.Clone(g.members)
}

// UpdateValues re-derives the group's own values from its members. A
// property the members agree on is stored on the group; a property they
// disagree on is stored as null. With more than one member, Name and Path
// are left untouched.
func (g *Group) UpdateValues() {
	multi := len(g.members) > 1
	for _, id := range property.All() {
		if multi && !property.Inheritable(id) {
			continue
		}

		value := property.Null()
		for _, m := range g.members {
			v := m.Property(id)
			if value.IsNull() {
				value = v
			} else if !value.Equal(v) {
				value = property.Null()
				break
			}
		}
		g.Profile.set(id, value)
	}
}

// SetProperty stores v on the group and on every member. With more than one
// member, Name and Path are ignored; a single-member group behaves like an
// ordinary profile.
func (g *Group) SetProperty(id property.Property, v property.Value) {
	if len(g.members) > 1 && !property.Inheritable(id) {
		return
	}
	g.Profile.set(id, v)
	for _, m := range g.members {
		m.SetProperty(id, v)
	}
}
