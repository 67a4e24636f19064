package types

import (
	"fmt"
	"reflect"

	"github.com/dolthub/swiss"
)

// A Map represents a map or dictionary. If you know the exact final number of
// entries, it is more efficient to call NewMap with that size. Like arrays,
// maps are reference values.
type Map struct {
	m *swiss.Map[Value, Value]
}

var _ Value = (*Map)(nil)

// NewMap returns a map with initial capacity for at least size items.
func NewMap(size int) *Map {
	m := swiss.NewMap[Value, Value](uint32(size))
	return &Map{m: m}
}

func (m *Map) String() string { return fmt.Sprintf("map(%p)", m) }
func (m *Map) Type() string   { return "map" }
func (m *Map) Len() int       { return m.m.Count() }

// Get returns the value associated with k, with found set to false if there
// is none. It fails if k cannot be a map key.
func (m *Map) Get(k Value) (Value, bool, error) {
	if err := checkHashable(k); err != nil {
		return nil, false, err
	}
	v, ok := m.m.Get(k)
	return v, ok, nil
}

// SetKey sets the value of key k to v. Setting a key to Nil removes it.
func (m *Map) SetKey(k, v Value) error {
	if err := checkHashable(k); err != nil {
		return err
	}
	if v == Nil {
		m.m.Delete(k)
		return nil
	}
	m.m.Put(k, v)
	return nil
}

// checkHashable returns an error if k cannot be used as a map key. The
// underlying hash map would panic on a key whose dynamic type is not
// comparable (e.g. a Tuple).
func checkHashable(k Value) error {
	if k == nil || k == Nil {
		return fmt.Errorf("invalid map key: nil")
	}
	if !reflect.TypeOf(k).Comparable() {
		return fmt.Errorf("unhashable type: %s", k.Type())
	}
	if f, ok := k.(Float); ok && f != f {
		return fmt.Errorf("invalid map key: NaN")
	}
	return nil
}
