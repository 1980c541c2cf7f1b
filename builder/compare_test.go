package builder_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zkcollective/r1cs/builder"
	"github.com/zkcollective/r1cs/field"
	"github.com/zkcollective/r1cs/field/bn254"
	"github.com/zkcollective/r1cs/gadget"
	"github.com/zkcollective/r1cs/test"
)

// compareAll builds one gadget computing all four comparisons of two wires
// and returns their truth values on the given assignment.
func compareAll(t *testing.T, f field.Field, x, y interface{}) (lt, le, gt, ge bool) {
	t.Helper()
	b := builder.New(f)
	wx, wy := b.Wire(), b.Wire()
	bLt := b.IsLess(b.Expr(wx), b.Expr(wy))
	bLe := b.IsLessEq(b.Expr(wx), b.Expr(wy))
	bGt := b.IsGreater(b.Expr(wx), b.Expr(wy))
	bGe := b.IsGreaterEq(b.Expr(wx), b.Expr(wy))

	g := b.Build()
	v := g.NewWireValues()
	v.SetInterface(wx, x)
	v.SetInterface(wy, y)
	test.NewAssert(t).Satisfied(g, v)

	read := func(bb builder.Boolean) bool {
		ok, err := bb.Evaluate(f, v)
		require.NoError(t, err)
		return ok
	}
	return read(bLt), read(bLe), read(bGt), read(bGe)
}

func TestComparisonsSmallField(t *testing.T) {
	f := smallField()

	cases := []struct {
		x, y   int
		lt, le bool
	}{
		{42, 63, true, true},
		{63, 42, false, false},
		{42, 42, false, true},
		{0, 0, false, true},
		{0, 256, true, true},
		{256, 0, false, false},
		{255, 256, true, true},
	}
	for _, tc := range cases {
		lt, le, gt, ge := compareAll(t, f, tc.x, tc.y)
		require.Equal(t, tc.lt, lt, "%d < %d", tc.x, tc.y)
		require.Equal(t, tc.le, le, "%d <= %d", tc.x, tc.y)
		require.Equal(t, !tc.le, gt, "%d > %d", tc.x, tc.y)
		require.Equal(t, !tc.lt, ge, "%d >= %d", tc.x, tc.y)
	}
}

func TestComparisonsMultiChunk(t *testing.T) {
	f := &bn254.Field{}

	a := new(big.Int).Lsh(big.NewInt(1), 80)
	a.Add(a, big.NewInt(1)) // 2^80 + 1
	c := new(big.Int).Lsh(big.NewInt(1), 81)

	lt, le, gt, ge := compareAll(t, f, a, c)
	require.True(t, lt)
	require.True(t, le)
	require.False(t, gt)
	require.False(t, ge)

	// equal multi-chunk operands
	lt, le, gt, ge = compareAll(t, f, c, new(big.Int).Set(c))
	require.False(t, lt)
	require.True(t, le)
	require.False(t, gt)
	require.True(t, ge)
}

func TestAssertIsLess(t *testing.T) {
	f := smallField()

	build := func() *gadget.Gadget {
		b := builder.New(f)
		wx, wy := b.Wire(), b.Wire()
		b.AssertIsLess(b.Expr(wx), b.Expr(wy))
		return b.Build()
	}

	g := build()
	v := g.NewWireValues()
	v.SetInterface(1, 42)
	v.SetInterface(2, 63)
	test.NewAssert(t).Satisfied(g, v)

	g = build()
	v = g.NewWireValues()
	v.SetInterface(1, 63)
	v.SetInterface(2, 42)
	test.NewAssert(t).Unsatisfied(g, v)

	g = build()
	v = g.NewWireValues()
	v.SetInterface(1, 42)
	v.SetInterface(2, 42)
	test.NewAssert(t).Unsatisfied(g, v)
}

func TestComparisonTotality(t *testing.T) {
	f := smallField()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	elem := gen.IntRange(0, 256)

	properties.Property("comparisons agree with integer order", prop.ForAll(
		func(x, y int) bool {
			lt, le, gt, ge := compareAll(t, f, x, y)
			return lt == (x < y) && le == (x <= y) && gt == (x > y) && ge == (x >= y)
		}, elem, elem))

	properties.TestingRun(t)
}
