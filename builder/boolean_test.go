package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkcollective/r1cs/builder"
	"github.com/zkcollective/r1cs/test"
)

func TestBooleanAlgebra(t *testing.T) {
	f := smallField()

	for _, av := range []int{0, 1} {
		for _, bv := range []int{0, 1} {
			b := builder.New(f)
			wa, wb := b.Wire(), b.Wire()
			ba := b.AssertIsBoolean(b.Expr(wa))
			bb := b.AssertIsBoolean(b.Expr(wb))

			and := b.And(ba, bb)
			or := b.Or(ba, bb)
			xor := b.Xor(ba, bb)
			not := b.Not(ba)

			g := b.Build()
			v := g.NewWireValues()
			v.SetInterface(wa, av)
			v.SetInterface(wb, bv)
			test.NewAssert(t).Satisfied(g, v)

			require.Equal(t, f.FromInterface(av&bv), eval(t, f, and.Expr, v))
			require.Equal(t, f.FromInterface(av|bv), eval(t, f, or.Expr, v))
			require.Equal(t, f.FromInterface(av^bv), eval(t, f, xor.Expr, v))
			require.Equal(t, f.FromInterface(1-av), eval(t, f, not.Expr, v))
		}
	}
}

func TestAssertIsBooleanRejectsOther(t *testing.T) {
	f := smallField()
	b := builder.New(f)
	w := b.Wire()
	b.AssertIsBoolean(b.Expr(w))
	g := b.Build()

	v := g.NewWireValues()
	v.SetInterface(w, 2)
	test.NewAssert(t).Unsatisfied(g, v)
}

func TestAssertIsBooleanDeduplicates(t *testing.T) {
	b := builder.New(smallField())
	w := b.Wire()
	b.AssertIsBoolean(b.Expr(w))
	n := b.NbConstraints()
	b.AssertIsBoolean(b.Expr(w))
	require.Equal(t, n, b.NbConstraints())
}

func TestBinaryRearrangement(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	// constant vector 0b0110
	bits := b.ConstantBinary(6, 4)
	require.Equal(t, 4, bits.NbBits())

	check := func(bin builder.Binary, want int) {
		t.Helper()
		v, ok := b.Join(bin).AsConstant()
		require.True(t, ok)
		require.Equal(t, f.FromInterface(want), v)
	}

	check(bits, 6)
	check(bits.Truncate(2), 2)        // 0b10
	check(bits.Pad(6), 6)             // zero extended
	check(bits.Reverse(), 6)          // 0b0110 is a palindrome
	check(bits.RotateLeft(1), 12)     // 0b1100
	check(bits.RotateLeft(-1), 3)     // 0b0011
	check(bits.ShiftLeft(1), 12)      // 0b1100
	check(bits.ShiftRight(1), 3)      // 0b0011
	check(bits.ShiftRight(4), 0)

	chunks := bits.Chunks(3)
	require.Len(t, chunks, 2)
	check(chunks[0], 6) // low three bits 0b110
	check(chunks[1], 0)

	require.Panics(t, func() { bits.Truncate(5) })
	require.Panics(t, func() { bits.Pad(3) })
}

func TestBitwiseVectors(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x := b.ConstantBinary(0b1100, 4)
	y := b.ConstantBinary(0b1010, 4)

	check := func(bin builder.Binary, want int) {
		t.Helper()
		v, ok := b.Join(bin).AsConstant()
		require.True(t, ok)
		require.Equal(t, f.FromInterface(want), v)
	}

	check(b.AndBits(x, y), 0b1000)
	check(b.OrBits(x, y), 0b1110)
	check(b.XorBits(x, y), 0b0110)
	check(b.NotBits(x), 0b0011)
}

func TestJoinTooWidePanics(t *testing.T) {
	f := smallField() // 9-bit field
	b := builder.New(f)
	bits := b.ConstantBinary(0, 10)
	require.Panics(t, func() { b.Join(bits) })
}

func TestAddBits(t *testing.T) {
	f := smallField()

	cases := []struct {
		x, y, carryIn int
	}{
		{0, 0, 0}, {5, 6, 0}, {15, 1, 0}, {15, 15, 1}, {9, 3, 1},
	}
	for _, tc := range cases {
		b := builder.New(f)
		wx, wy := b.Wire(), b.Wire()
		bx := b.SplitBounded(b.Expr(wx), 4)
		by := b.SplitBounded(b.Expr(wy), 4)
		carry := b.False()
		if tc.carryIn == 1 {
			carry = b.True()
		}
		sum, carryOut := b.AddBits(bx, by, carry)
		joined := b.Join(sum)

		g := b.Build()
		v := g.NewWireValues()
		v.SetInterface(wx, tc.x)
		v.SetInterface(wy, tc.y)
		test.NewAssert(t).Satisfied(g, v)

		total := tc.x + tc.y + tc.carryIn
		require.Equal(t, f.FromInterface(total%16), eval(t, f, joined, v))
		require.Equal(t, f.FromInterface(total/16), eval(t, f, carryOut.Expr, v))
	}
}
