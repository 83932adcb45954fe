package value

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Dictionary maps field names to slot indices, in insertion order.
// The analyzer builds one per module and shares it, immutable from then
// on, with the runtime Module.
type Dictionary struct {
	m *linkedhashmap.Map
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{m: linkedhashmap.New()}
}

// Get returns the slot bound to name.
func (d *Dictionary) Get(name Atom) (int, bool) {
	v, ok := d.m.Get(name)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// Put binds name to slot. Slots must be assigned densely in insertion
// order; binding an existing name is the caller's error to detect.
func (d *Dictionary) Put(name Atom, slot int) {
	d.m.Put(name, slot)
}

// Size returns the number of bindings.
func (d *Dictionary) Size() int { return d.m.Size() }

// Names returns the field names in insertion (slot) order.
func (d *Dictionary) Names() []Atom {
	keys := d.m.Keys()
	names := make([]Atom, len(keys))
	for i, k := range keys {
		names[i] = k.(Atom)
	}
	return names
}

// Module is the runtime record produced by evaluating a module
// expression: a shared name-to-slot dictionary, the slot values
// (thunks, lambdas, or forced values), and the side-effecting elements.
type Module struct {
	Dictionary *Dictionary
	Slots      []Value
	Elements   []Value
}

// GetField returns the slot value bound to name, or (nil, false).
func (m *Module) GetField(name Atom) (Value, bool) {
	slot, ok := m.Dictionary.Get(name)
	if !ok {
		return nil, false
	}
	return m.Slots[slot], true
}

func (m *Module) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range m.Dictionary.Names() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(name))
		b.WriteByte('=')
		if v := m.Slots[i]; v != nil {
			b.WriteString(v.String())
		}
	}
	b.WriteByte('}')
	return b.String()
}
func (*Module) value() {}
