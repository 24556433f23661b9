package property

// Map is an insertion-ordered Property to Value mapping. Re-setting a key
// keeps its original position. The zero Map is ready to use and a nil *Map
// reads as empty.
type Map struct {
	keys   []Property
	values map[Property]Value
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{values: make(map[Property]Value)}
}

// Set stores v under p.
func (m *Map) Set(p Property, v Value) {
	if m.values == nil {
		m.values = make(map[Property]Value)
	}
	if _, ok := m.values[p]; !ok {
		m.keys = append(m.keys, p)
	}
	m.values[p] = v
}

// Get returns the value stored under p.
func (m *Map) Get(p Property) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[p]
	return v, ok
}

// Has reports whether p is present.
func (m *Map) Has(p Property) bool {
	_, ok := m.Get(p)
	return ok
}

// Delete removes p.
func (m *Map) Delete(p Property) {
	if m == nil {
		return
	}
	if _, ok := m.values[p]; !ok {
		return
	}
	delete(m.values, p)
	for i, k := range m.keys {
		if k == p {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Property {
	if m == nil {
		return nil
	}
	out := make([]Property, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(Property, Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
