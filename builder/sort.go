package builder

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/utils"
)

func sortHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	idx := make([]int, len(inputs))
	for i := range idx {
		idx[i] = i
	}
	utils.SortIntSeq(idx, func(a, b int) bool { return inputs[a].Cmp(inputs[b]) < 0 })
	for i, j := range idx {
		outputs[i].Set(inputs[j])
	}
	return nil
}

// SortAscending returns the values of items in non-decreasing order of their
// canonical integer representatives. A generator supplies the sorted list; it
// is constrained to be a permutation of the input with non-decreasing
// adjacent pairs.
func (builder *Builder) SortAscending(items []frontend.Variable) []expr.Expression {
	v, _ := builder.toVariables(items...)
	if len(v) <= 1 {
		return v
	}
	sorted := builder.NewHint(sortHint, len(v), items...)
	builder.assertPermutation(v, sorted)
	for i := 0; i+1 < len(sorted); i++ {
		builder.AssertIsLessEq(sorted[i], sorted[i+1])
	}
	return sorted
}

// SortDescending returns the values of items in non-increasing order.
func (builder *Builder) SortDescending(items []frontend.Variable) []expr.Expression {
	asc := builder.SortAscending(items)
	res := make([]expr.Expression, len(asc))
	for i, e := range asc {
		res[len(res)-1-i] = e
	}
	return res
}
