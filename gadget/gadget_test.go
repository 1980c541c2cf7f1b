package gadget_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
	"github.com/zkcollective/r1cs/gadget"
)

func doubleHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	outputs[0].Add(inputs[0], inputs[0])
	return nil
}

func failingHint(_ *big.Int, _ []*big.Int, _ []*big.Int) error {
	return errors.New("cannot complete")
}

// lin is shorthand for the expression 1*w.
func lin(f field.Field, w expr.Wire) expr.Expression {
	return expr.NewLinear(w, f.One())
}

func TestExecuteRunsGeneratorChain(t *testing.T) {
	f := field.ForOrder(big.NewInt(257))

	// w2 = 2*w1 and w3 = 2*w2, registered in reverse dependency order so the
	// fixed point needs more than one pass
	gens := []gadget.Generator{
		{Inputs: []expr.Expression{lin(f, 2)}, Outputs: []expr.Wire{3}, F: doubleHint},
		{Inputs: []expr.Expression{lin(f, 1)}, Outputs: []expr.Wire{2}, F: doubleHint},
	}
	cs := []gadget.Constraint{
		{A: lin(f, 3), B: expr.NewConstant(f.One()), C: expr.NewConstant(f.FromInterface(20))},
	}
	g := gadget.New(f, 4, cs, gens)

	v := g.NewWireValues()
	v.SetInterface(1, 5)
	ok, err := g.Execute(v)
	require.NoError(t, err)
	require.True(t, ok)

	got, found := v.Value(3)
	require.True(t, found)
	require.Equal(t, f.FromInterface(20), got)
}

func TestExecuteDeterministic(t *testing.T) {
	f := field.ForOrder(big.NewInt(257))

	gens := []gadget.Generator{
		{Inputs: []expr.Expression{lin(f, 1)}, Outputs: []expr.Wire{2}, F: doubleHint},
		{Inputs: []expr.Expression{lin(f, 2)}, Outputs: []expr.Wire{3}, F: doubleHint},
	}
	g := gadget.New(f, 4, nil, gens)

	v1 := g.NewWireValues()
	v1.SetInterface(1, 7)
	v2 := v1.Clone()

	ok, err := g.Execute(v1)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = g.Execute(v2)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, v1.Equal(v2))
}

func TestExecuteGeneratorFailureIsUnsatisfiable(t *testing.T) {
	f := field.ForOrder(big.NewInt(257))

	gens := []gadget.Generator{
		{Inputs: []expr.Expression{lin(f, 1)}, Outputs: []expr.Wire{2}, F: failingHint},
	}
	g := gadget.New(f, 3, nil, gens)

	v := g.NewWireValues()
	v.SetInterface(1, 5)
	ok, err := g.Execute(v)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExecuteMissingWireIsError(t *testing.T) {
	f := field.ForOrder(big.NewInt(257))

	cs := []gadget.Constraint{
		{A: lin(f, 1), B: expr.NewConstant(f.One()), C: expr.NewConstant(f.One())},
	}
	g := gadget.New(f, 2, cs, nil)

	ok, err := g.Execute(g.NewWireValues())
	require.False(t, ok)
	require.ErrorIs(t, err, expr.ErrMissingAssignment)
}

func TestExecuteViolatedConstraint(t *testing.T) {
	f := field.ForOrder(big.NewInt(257))

	cs := []gadget.Constraint{
		{A: lin(f, 1), B: lin(f, 1), C: expr.NewConstant(f.FromInterface(10))},
	}
	g := gadget.New(f, 2, cs, nil)

	v := g.NewWireValues()
	v.SetInterface(1, 3)
	ok, err := g.Execute(v)
	require.NoError(t, err)
	require.False(t, ok)

	v = g.NewWireValues()
	v.SetInterface(1, 100) // 100*100 = 10000 = 234 mod 257, not 10
	ok, err = g.Execute(v)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWireValues(t *testing.T) {
	f := field.ForOrder(big.NewInt(257))
	v := gadget.NewWireValues(f, 4)

	// the constant wire is preassigned
	one, ok := v.Value(expr.OneWire)
	require.True(t, ok)
	require.True(t, f.IsOne(one))
	require.Equal(t, 1, v.NbAssigned())

	v.SetInterface(2, 9)
	require.True(t, v.Has(2))
	require.False(t, v.Has(1))
	require.Equal(t, 2, v.NbAssigned())

	require.Panics(t, func() { v.SetInterface(2, 10) })
	require.Panics(t, func() { v.SetInterface(99, 1) })
}
