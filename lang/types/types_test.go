package types_test

import (
	"math"
	"testing"

	"github.com/mna/lotus/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	cases := []struct {
		v   types.Value
		str string
		typ string
	}{
		{types.Nil, "nil", "nil"},
		{types.True, "true", "bool"},
		{types.Int(-12), "-12", "int"},
		{types.Float(1.5), "1.5", "float"},
		{types.Float(1e21), "1e+21", "float"},
		{types.String(`a"b`), `"a\"b"`, "string"},
		{types.Tuple{}, "()", "tuple"},
		{types.Tuple{types.Int(1)}, "(1,)", "tuple"},
		{types.Tuple{types.Int(1), types.String("x")}, `(1, "x")`, "tuple"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.str, tc.v.String())
		assert.Equal(t, tc.typ, tc.v.Type())
	}
}

func TestFloatCmp(t *testing.T) {
	nan := types.Float(math.NaN())
	assert.Equal(t, -1, types.FloatCmp(1, 2))
	assert.Equal(t, 0, types.FloatCmp(2, 2))
	assert.Equal(t, +1, types.FloatCmp(nan, types.Float(math.Inf(1))))
	assert.Equal(t, -1, types.FloatCmp(types.Float(math.Inf(1)), nan))
	assert.Equal(t, 0, types.FloatCmp(nan, nan))
}

func TestArray(t *testing.T) {
	a := types.NewArray([]types.Value{types.Int(1)})
	a.Append(types.Int(2))
	require.Equal(t, 2, a.Len())
	require.NoError(t, a.SetIndex(0, types.String("x")))
	assert.Equal(t, types.String("x"), a.Index(0))
	assert.Equal(t, types.Int(2), a.Index(1))
}

func TestMap(t *testing.T) {
	m := types.NewMap(2)
	require.NoError(t, m.SetKey(types.String("a"), types.Int(1)))
	require.NoError(t, m.SetKey(types.Int(1), types.True))
	assert.Equal(t, 2, m.Len())

	v, ok, err := m.Get(types.String("a"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.Int(1), v)

	// Int and Float keys are distinct
	_, ok, err = m.Get(types.Float(1))
	require.NoError(t, err)
	assert.False(t, ok)

	// setting to nil deletes
	require.NoError(t, m.SetKey(types.String("a"), types.Nil))
	_, ok, _ = m.Get(types.String("a"))
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	// reference values are valid keys
	arr := types.NewArray(nil)
	require.NoError(t, m.SetKey(arr, types.Int(3)))
	v, ok, _ = m.Get(arr)
	assert.True(t, ok)
	assert.Equal(t, types.Int(3), v)
}

func TestMapInvalidKeys(t *testing.T) {
	m := types.NewMap(0)
	assert.EqualError(t, m.SetKey(types.Tuple{types.Int(1)}, types.True), "unhashable type: tuple")
	assert.EqualError(t, m.SetKey(types.Nil, types.True), "invalid map key: nil")
	assert.EqualError(t, m.SetKey(types.Float(math.NaN()), types.True), "invalid map key: NaN")

	_, _, err := m.Get(types.Tuple{})
	assert.EqualError(t, err, "unhashable type: tuple")
	assert.Equal(t, 0, m.Len())
}
