package profile

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/firefly-engineering/profilectl/internal/property"
)

// ErrCyclicParent is returned by SetParent when the new parent chain
// already contains the receiver.
var ErrCyclicParent = errors.New("cyclic parent")

// Profile is a set of terminal properties with optional inheritance from a
// single parent.
type Profile struct {
	values map[property.Property]property.Value
	parent *Profile
	hidden bool

	// group is set when this profile is the base of a Group; writes are
	// then dispatched through the group's rules.
	group *Group
}

// New creates an empty profile inheriting from parent, which may be nil.
func New(parent *Profile) *Profile {
	return &Profile{
		values: make(map[property.Property]property.Value),
		parent: parent,
	}
}

// Property resolves id: the local value if set, otherwise the parent's
// value for inheritable properties, otherwise null.
func (p *Profile) Property(id property.Property) property.Value {
	inherit := property.Inheritable(id)
	for cur := p; cur != nil; cur = cur.parent {
		if v, ok := cur.values[id]; ok {
			return v
		}
		if !inherit {
			break
		}
	}
	return property.Null()
}

// IsPropertySet reports whether id is stored on p itself.
func (p *Profile) IsPropertySet(id property.Property) bool {
	_, ok := p.values[id]
	return ok
}

// SetProperty stores v converted to the declared type of id.
func (p *Profile) SetProperty(id property.Property, v property.Value) {
	if p.group != nil {
		p.group.SetProperty(id, v)
		return
	}
	p.set(id, v)
}

func (p *Profile) set(id property.Property, v property.Value) {
	p.values[id] = property.Coerce(id, v)
}

// Unset removes the local value of id so it is inherited again.
func (p *Profile) Unset(id property.Property) {
	delete(p.values, id)
}

// Parent returns the parent profile or nil.
func (p *Profile) Parent() *Profile {
	return p.parent
}

// SetParent attaches parent. Passing nil detaches the current parent.
func (p *Profile) SetParent(parent *Profile) error {
	for cur := parent; cur != nil; cur = cur.parent {
		if cur == p {
			return fmt.Errorf("set parent of %q to %q: %w", p.Name(), parent.Name(), ErrCyclicParent)
		}
	}
	p.parent = parent
	return nil
}

// Hidden reports whether p is excluded from persistence and menus.
func (p *Profile) Hidden() bool {
	return p.hidden
}

// SetHidden marks p as hidden.
func (p *Profile) SetHidden(hidden bool) {
	p.hidden = hidden
}

// IsEmpty reports whether no property is set locally.
func (p *Profile) IsEmpty() bool {
	return len(p.values) == 0
}

// AsGroup returns the group p belongs to as its base, or nil.
func (p *Profile) AsGroup() *Group {
	return p.group
}

// Clone copies every property except Name and Path from source. With
// differentOnly, a property is copied only when its resolved value on p
// differs from source, so inherited defaults do not become local overrides.
func (p *Profile) Clone(source *Profile, differentOnly bool) {
	for _, id := range property.All() {
		if !property.Inheritable(id) {
			continue
		}
		v := source.Property(id)
		if !differentOnly || !p.Property(id).Equal(v) {
			p.SetProperty(id, v)
		}
	}
}

// SetProperties returns a copy of the locally set properties in registry
// order.
func (p *Profile) SetProperties() *property.Map {
	m := property.NewMap()
	for _, id := range property.All() {
		if v, ok := p.values[id]; ok {
			m.Set(id, v)
		}
	}
	return m
}

// SetPropertiesFrom applies every entry of m through SetProperty.
func (p *Profile) SetPropertiesFrom(m *property.Map) {
	m.Range(func(id property.Property, v property.Value) bool {
		p.SetProperty(id, v)
		return true
	})
}

func (p *Profile) Name() string        { return p.Property(property.Name).AsString() }
func (p *Profile) Path() string        { return p.Property(property.Path).AsString() }
func (p *Profile) Command() string     { return p.Property(property.Command).AsString() }
func (p *Profile) Arguments() []string { return p.Property(property.Arguments).AsStringList() }
func (p *Profile) Directory() string   { return p.Property(property.Directory).AsString() }
func (p *Profile) Icon() string        { return p.Property(property.Icon).AsString() }
func (p *Profile) ColorScheme() string { return p.Property(property.ColorScheme).AsString() }
func (p *Profile) MenuIndex() string   { return p.Property(property.MenuIndex).AsString() }

func (p *Profile) Font() property.FontDesc {
	return p.Property(property.Font).AsFont()
}

func (p *Profile) Environment() []string {
	return p.Property(property.Environment).AsStringList()
}

// MenuIndexAsInt returns the menu index, or 0 when it is not an integer.
func (p *Profile) MenuIndexAsInt() int {
	n, err := strconv.Atoi(p.MenuIndex())
	if err != nil {
		return 0
	}
	return n
}

// PropertiesInfoList describes every registered name as "<Name> : <type>".
func PropertiesInfoList() []string {
	rows := property.Rows()
	out := make([]string, 0, len(rows))
	for _, info := range rows {
		out = append(out, fmt.Sprintf("%s : %s", info.Name, info.Type))
	}
	return out
}
