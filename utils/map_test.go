package utils_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkcollective/r1cs/utils"
)

// key is a Hashable with a deliberately coarse hash, to exercise bucket
// collisions.
type key int

func (k key) HashCode() uint64 { return uint64(k % 2) }

func (k key) EqualI(o utils.Hashable) bool {
	ok, isKey := o.(key)
	return isKey && k == ok
}

func TestMap(t *testing.T) {
	m := make(utils.Map)

	_, found := m.Find(key(1))
	require.False(t, found)

	m.Set(key(1), "a")
	m.Set(key(3), "b") // collides with 1
	m.Set(key(2), "c")

	v, found := m.Find(key(3))
	require.True(t, found)
	require.Equal(t, "b", v)

	m.Set(key(3), "b2")
	v, _ = m.Find(key(3))
	require.Equal(t, "b2", v)

	// Add does not overwrite
	require.Equal(t, "b2", m.Add(key(3), "b3"))
	require.Equal(t, "d", m.Add(key(5), "d"))

	keys := m.FilterKeys(func(v interface{}) bool { return v == "c" })
	require.Equal(t, []utils.Hashable{key(2)}, keys)

	m.Clear()
	_, found = m.Find(key(1))
	require.False(t, found)
}

func TestFromInterface(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{42, 42},
		{int8(-7), -7},
		{uint16(99), 99},
		{"0xff", 255},
		{"0b101", 5},
		{[]byte{2, 1}, 513},
		{big.NewInt(5), 5},
	}
	for _, tc := range cases {
		got := utils.FromInterface(tc.in)
		require.Equal(t, tc.want, got.Int64())
	}
	require.Panics(t, func() { utils.FromInterface(3.14) })
	require.Panics(t, func() { utils.FromInterface("not a number") })
}
