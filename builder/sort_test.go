package builder_test

import (
	"testing"

	"github.com/consensys/gnark/frontend"
	"github.com/stretchr/testify/require"

	"github.com/zkcollective/r1cs/builder"
	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/test"
)

func runSort(t *testing.T, in, wantAsc []int) {
	t.Helper()
	f := smallField()
	b := builder.New(f)
	items := make([]frontend.Variable, len(in))
	for i := range in {
		items[i] = b.Expr(b.Wire())
	}
	asc := b.SortAscending(items)
	desc := b.SortDescending(items)

	g := b.Build()
	v := g.NewWireValues()
	for i, x := range in {
		v.SetInterface(expr.Wire(1+i), x)
	}
	test.NewAssert(t).Satisfied(g, v)

	for i, want := range wantAsc {
		require.Equal(t, f.FromInterface(want), eval(t, f, asc[i], v))
		require.Equal(t, f.FromInterface(wantAsc[len(wantAsc)-1-i]), eval(t, f, desc[i], v))
	}
}

func TestSort(t *testing.T) {
	runSort(t, []int{4, 7, 0, 1}, []int{0, 1, 4, 7})
	runSort(t, []int{5}, []int{5})
	runSort(t, []int{3, 3, 1}, []int{1, 3, 3})
	runSort(t, []int{9, 8, 7, 6, 5}, []int{5, 6, 7, 8, 9})
}
