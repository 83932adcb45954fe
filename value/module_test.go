package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryOrder(t *testing.T) {
	d := NewDictionary()
	d.Put("c", 0)
	d.Put("a", 1)
	d.Put("b", 2)

	assert.Equal(t, 3, d.Size())
	assert.Equal(t, []Atom{"c", "a", "b"}, d.Names())

	slot, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, slot)

	_, ok = d.Get("missing")
	assert.False(t, ok)
}

func TestModuleGetField(t *testing.T) {
	d := NewDictionary()
	d.Put("x", 0)
	d.Put("y", 1)
	m := &Module{
		Dictionary: d,
		Slots:      []Value{Number(1), Number(2)},
	}

	v, ok := m.GetField("y")
	require.True(t, ok)
	assert.Equal(t, Number(2), v)

	_, ok = m.GetField("z")
	assert.False(t, ok)

	assert.Equal(t, "{x=1,y=2}", m.String())
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "null", Null{}.String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, `"hi"`, Str("hi").String())
	assert.Equal(t, "[1,2]", List{Number(1), Number(2)}.String())
	assert.Equal(t, "<function sqrt>", (&Function{Name: "sqrt"}).String())
	assert.Equal(t, "<thunk>", (&Thunk{}).String())
	assert.Equal(t, "<function>", (&Lambda{}).String())
}
