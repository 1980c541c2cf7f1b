package builder_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/stretchr/testify/require"

	"github.com/zkcollective/r1cs/builder"
	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
	"github.com/zkcollective/r1cs/gadget"
	"github.com/zkcollective/r1cs/test"
)

func smallField() field.Field {
	return field.ForOrder(big.NewInt(257))
}

// eval reads the value of an expression after execution.
func eval(t *testing.T, f field.Field, e expr.Expression, v *gadget.WireValues) constraint.Element {
	t.Helper()
	x, err := e.Evaluate(f, v)
	require.NoError(t, err)
	return x
}

func TestAddSubFolding(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	// constants fold without wires or constraints
	c := b.Add(b.Constant(3), b.Constant(4), b.Constant(5))
	v, ok := c.AsConstant()
	require.True(t, ok)
	require.Equal(t, f.FromInterface(12), v)

	c = b.Sub(b.Constant(3), b.Constant(4))
	v, ok = c.AsConstant()
	require.True(t, ok)
	require.Equal(t, f.FromInterface(256), v)

	require.Equal(t, 0, b.NbConstraints())
}

func TestAddCancellation(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	w := b.Wire()
	x := b.Expr(w)
	zero := b.Sub(x, x)
	v, ok := zero.AsConstant()
	require.True(t, ok)
	require.True(t, v.IsZero())
}

func TestProductRoundTrip(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x, y := b.Wire(), b.Wire()
	p := b.Product(b.Expr(x), b.Expr(y))
	require.Equal(t, 1, b.NbConstraints())

	g := b.Build()
	v := g.NewWireValues()
	v.SetInterface(x, 20)
	v.SetInterface(y, 30)

	a := test.NewAssert(t)
	a.Satisfied(g, v)
	// 600 mod 257 = 86
	require.Equal(t, f.FromInterface(86), eval(t, f, p, v))
}

func TestProductConstantFolds(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x := b.Wire()
	p := b.Product(b.Expr(x), b.Constant(4))
	// scaled expression, no constraint and no extra wire
	require.Equal(t, 0, b.NbConstraints())
	require.Equal(t, 2, b.NbWires())

	g := b.Build()
	v := g.NewWireValues()
	v.SetInterface(x, 10)
	test.NewAssert(t).Satisfied(g, v)
	require.Equal(t, f.FromInterface(40), eval(t, f, p, v))
}

func TestInverse(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x := b.Wire()
	inv := b.Inverse(b.Expr(x))
	g := b.Build()

	v := g.NewWireValues()
	v.SetInterface(x, 3)
	test.NewAssert(t).Satisfied(g, v)
	got := eval(t, f, inv, v)
	require.True(t, f.IsOne(f.Mul(f.FromInterface(3), got)))
}

func TestInverseOfZeroUnsatisfiable(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x := b.Wire()
	b.Inverse(b.Expr(x))
	g := b.Build()

	v := g.NewWireValues()
	v.SetInterface(x, 0)
	test.NewAssert(t).Unsatisfied(g, v)
}

func TestInverseOrZero(t *testing.T) {
	f := smallField()

	for _, in := range []int{0, 1, 5, 256} {
		b := builder.New(f)
		x := b.Wire()
		m := b.InverseOrZero(b.Expr(x))
		g := b.Build()

		v := g.NewWireValues()
		v.SetInterface(x, in)
		test.NewAssert(t).Satisfied(g, v)

		got := eval(t, f, m, v)
		if in == 0 {
			require.True(t, got.IsZero())
		} else {
			require.True(t, f.IsOne(f.Mul(f.FromInterface(in), got)))
		}
	}
}

func TestDiv(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x, y := b.Wire(), b.Wire()
	q := b.Div(b.Expr(x), b.Expr(y))
	g := b.Build()

	v := g.NewWireValues()
	v.SetInterface(x, 6)
	v.SetInterface(y, 3)
	test.NewAssert(t).Satisfied(g, v)
	require.Equal(t, f.FromInterface(2), eval(t, f, q, v))
}

func TestQuoRem(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x, y := b.Wire(), b.Wire()
	q, r := b.QuoRem(b.Expr(x), b.Expr(y))
	g := b.Build()

	v := g.NewWireValues()
	v.SetInterface(x, 17)
	v.SetInterface(y, 5)
	test.NewAssert(t).Satisfied(g, v)
	require.Equal(t, f.FromInterface(3), eval(t, f, q, v))
	require.Equal(t, f.FromInterface(2), eval(t, f, r, v))
}

func TestExp(t *testing.T) {
	f := smallField()
	b := builder.New(f)

	x := b.Wire()
	e := b.Exp(b.Expr(x), big.NewInt(10))
	g := b.Build()

	v := g.NewWireValues()
	v.SetInterface(x, 2)
	test.NewAssert(t).Satisfied(g, v)
	// 1024 mod 257 = 253
	require.Equal(t, f.FromInterface(253), eval(t, f, e, v))
}

func TestSelect(t *testing.T) {
	f := smallField()

	for _, cond := range []int{0, 1} {
		b := builder.New(f)
		c, x, y := b.Wire(), b.Wire(), b.Wire()
		res := b.Select(b.AssertIsBoolean(b.Expr(c)), b.Expr(x), b.Expr(y))
		g := b.Build()

		v := g.NewWireValues()
		v.SetInterface(c, cond)
		v.SetInterface(x, 11)
		v.SetInterface(y, 22)
		test.NewAssert(t).Satisfied(g, v)

		want := 22
		if cond == 1 {
			want = 11
		}
		require.Equal(t, f.FromInterface(want), eval(t, f, res, v))
	}
}

func TestIsZeroIsEqual(t *testing.T) {
	f := smallField()

	cases := []struct {
		x, y int
		eq   bool
	}{
		{0, 0, true}, {5, 5, true}, {5, 6, false}, {0, 256, false},
	}
	for _, tc := range cases {
		b := builder.New(f)
		x, y := b.Wire(), b.Wire()
		z := b.IsZero(b.Sub(b.Expr(x), b.Expr(y)))
		e := b.IsEqual(b.Expr(x), b.Expr(y))
		g := b.Build()

		v := g.NewWireValues()
		v.SetInterface(x, tc.x)
		v.SetInterface(y, tc.y)
		test.NewAssert(t).Satisfied(g, v)

		want := f.FromInterface(0)
		if tc.eq {
			want = f.One()
		}
		require.Equal(t, want, eval(t, f, z.Expr, v))
		require.Equal(t, want, eval(t, f, e.Expr, v))
	}
}

func TestRandomAccess(t *testing.T) {
	f := smallField()

	items := []int{40, 41, 42, 43}
	for idx := range items {
		b := builder.New(f)
		i := b.Wire()
		itemVars := make([]frontend.Variable, len(items))
		for j, it := range items {
			itemVars[j] = it
		}
		res := b.RandomAccess(b.Expr(i), itemVars)
		g := b.Build()

		v := g.NewWireValues()
		v.SetInterface(i, idx)
		test.NewAssert(t).Satisfied(g, v)
		require.Equal(t, f.FromInterface(items[idx]), eval(t, f, res, v))
	}
}

func TestAssertIsEqualConstantPanics(t *testing.T) {
	b := builder.New(smallField())
	require.Panics(t, func() { b.AssertIsEqual(b.Constant(1), b.Constant(2)) })
	require.Panics(t, func() { b.AssertProduct(b.Constant(2), b.Constant(3), b.Constant(7)) })
	require.NotPanics(t, func() { b.AssertProduct(b.Constant(2), b.Constant(3), b.Constant(6)) })
}

func TestBuildConsumes(t *testing.T) {
	b := builder.New(smallField())
	b.Wire()
	b.Build()
	require.Panics(t, func() { b.Wire() })
	require.Panics(t, func() { b.Build() })
}
