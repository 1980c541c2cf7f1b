// Package test provides assertion helpers shared by gadget tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkcollective/r1cs/gadget"
)

type Assert struct {
	t *testing.T
}

func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// Satisfied executes the gadget and requires a satisfied outcome.
func (a *Assert) Satisfied(g *gadget.Gadget, v *gadget.WireValues) {
	a.t.Helper()
	ok, err := g.Execute(v)
	require.NoError(a.t, err)
	require.True(a.t, ok, "assignment should satisfy the gadget")
}

// Unsatisfied executes the gadget and requires an unsatisfied outcome.
func (a *Assert) Unsatisfied(g *gadget.Gadget, v *gadget.WireValues) {
	a.t.Helper()
	ok, err := g.Execute(v)
	require.NoError(a.t, err)
	require.False(a.t, ok, "assignment should not satisfy the gadget")
}
