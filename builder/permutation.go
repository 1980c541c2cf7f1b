package builder

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/zkcollective/r1cs/expr"
)

// AssertIsPermutation constrains a and b, two equal-length lists, to hold the
// same multiset of values, without fixing which permutation relates them. It
// builds an AS-Waksman network of conditional 2-way switches, O(n log n)
// switches in total; the switch settings are supplied at execution time by a
// routing generator per recursion level.
func (builder *Builder) AssertIsPermutation(a, b []frontend.Variable) {
	if len(a) != len(b) {
		panic("permutation between lists of different lengths")
	}
	va, _ := builder.toVariables(a...)
	vb, _ := builder.toVariables(b...)
	builder.assertPermutation(va, vb)
}

func (builder *Builder) assertPermutation(a, b []expr.Expression) {
	n := len(a)
	switch n {
	case 0:
		return
	case 1:
		builder.AssertIsEqual(a[0], b[0])
		return
	case 2:
		s := builder.routeSwitches(a, b, 1)
		c, d := builder.applySwitch(a[0], a[1], s[0])
		builder.AssertIsEqual(c, b[0])
		builder.AssertIsEqual(d, b[1])
		return
	}

	nA, nB := switchCounts(n)
	s := builder.routeSwitches(a, b, nA+nB)
	sA, sB := s[:nA], s[nA:]

	// switches on the a side feed the children; switches on the b side,
	// being involutions, recover the children's outputs from b
	c1in := make([]expr.Expression, n/2)
	c2in := make([]expr.Expression, n-n/2)
	for i := 0; i < nA; i++ {
		c1in[i], c2in[i] = builder.applySwitch(a[2*i], a[2*i+1], sA[i])
	}
	c1out := make([]expr.Expression, n/2)
	c2out := make([]expr.Expression, n-n/2)
	for j := 0; j < nB; j++ {
		c1out[j], c2out[j] = builder.applySwitch(b[2*j], b[2*j+1], sB[j])
	}
	if n%2 == 0 {
		// the last b pair is wired straight through, one to each child
		c1out[n/2-1] = b[n-2]
		c2out[n/2-1] = b[n-1]
	} else {
		// one element on each side bypasses switching into the second child
		c2in[n/2] = a[n-1]
		c2out[n/2] = b[n-1]
	}

	builder.assertPermutation(c1in, c1out)
	builder.assertPermutation(c2in, c2out)
}

// switchCounts returns the number of switches on the a side and on the b
// side of one AS-Waksman level of width n ≥ 2.
func switchCounts(n int) (nA, nB int) {
	if n%2 == 0 {
		return n / 2, n/2 - 1
	}
	return n / 2, n / 2
}

// applySwitch returns (x,y) when s is false and (y,x) when s is true, with a
// single product constraint.
func (builder *Builder) applySwitch(x, y expr.Expression, s Boolean) (expr.Expression, expr.Expression) {
	c := builder.Add(x, builder.Product(s.Expr, builder.Sub(y, x)))
	d := builder.Sub(builder.Add(x, y), c)
	return c, d
}

// routeSwitches registers the routing generator for one level: it reads the
// concrete a and b values and produces the boolean setting of every switch
// on both sides of the level.
func (builder *Builder) routeSwitches(a, b []expr.Expression, nbSwitches int) []Boolean {
	inputs := make([]frontend.Variable, 0, len(a)+len(b))
	for _, e := range a {
		inputs = append(inputs, e)
	}
	for _, e := range b {
		inputs = append(inputs, e)
	}
	raw := builder.NewHint(routeHint, nbSwitches, inputs...)
	res := make([]Boolean, len(raw))
	for i, e := range raw {
		res[i] = builder.AssertIsBoolean(e)
	}
	return res
}

var errNoRouting = errors.New("no valid routing: lists are not permutations of each other")

// routeHint computes the switch settings of one level. Inputs are the n
// values on the a side followed by the n values on the b side; outputs are
// the a-side switch bits followed by the b-side switch bits.
//
// Positions are 2-colored by the child subnet they route through: paired
// positions of one switch take opposite colors, matched positions (equal
// value on opposite sides) take the same color. The coloring graph is a
// disjoint union of even cycles and, through the directly-wired positions,
// one path, so propagation from the forced seeds never conflicts for genuine
// permutations; free cycles get an arbitrary orientation from a top-down
// scan.
func routeHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	n := len(inputs) / 2
	aVals, bVals := inputs[:n], inputs[n:]
	nA, nB := switchCounts(n)

	// match each a position to a b position of equal value; duplicates are
	// consumed in order, any consistent choice routes
	queue := make(map[string][]int, n)
	for j, v := range bVals {
		k := v.String()
		queue[k] = append(queue[k], j)
	}
	matchA := make([]int, n)
	matchB := make([]int, n)
	for i, v := range aVals {
		k := v.String()
		q := queue[k]
		if len(q) == 0 {
			return errNoRouting
		}
		matchA[i] = q[0]
		matchB[q[0]] = i
		queue[k] = q[1:]
	}

	aColor := make([]int, n)
	bColor := make([]int, n)
	type pos struct {
		aSide bool
		idx   int
	}
	var pending []pos
	setColor := func(aSide bool, i, c int) error {
		colors := bColor
		if aSide {
			colors = aColor
		}
		if colors[i] != 0 {
			if colors[i] != c {
				return errNoRouting
			}
			return nil
		}
		colors[i] = c
		pending = append(pending, pos{aSide, i})
		return nil
	}
	drain := func() error {
		for len(pending) > 0 {
			p := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			if p.aSide {
				c := aColor[p.idx]
				if p.idx < 2*nA {
					if err := setColor(true, p.idx^1, 3-c); err != nil {
						return err
					}
				}
				if err := setColor(false, matchA[p.idx], c); err != nil {
					return err
				}
			} else {
				c := bColor[p.idx]
				if p.idx < 2*nB {
					if err := setColor(false, p.idx^1, 3-c); err != nil {
						return err
					}
				}
				if err := setColor(true, matchB[p.idx], c); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// seeds: the directly-wired positions have a forced subnet
	if n%2 == 0 {
		if err := setColor(false, n-2, 1); err != nil {
			return err
		}
		if err := setColor(false, n-1, 2); err != nil {
			return err
		}
	} else {
		if err := setColor(true, n-1, 2); err != nil {
			return err
		}
		if err := setColor(false, n-1, 2); err != nil {
			return err
		}
	}
	if err := drain(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if aColor[i] == 0 {
			if err := setColor(true, i, 1); err != nil {
				return err
			}
			if err := drain(); err != nil {
				return err
			}
		}
	}

	// a switch swaps when its first input routes to the second child
	for i := 0; i < nA; i++ {
		outputs[i].SetInt64(0)
		if aColor[2*i] == 2 {
			outputs[i].SetInt64(1)
		}
	}
	for j := 0; j < nB; j++ {
		outputs[nA+j].SetInt64(0)
		if bColor[2*j] == 2 {
			outputs[nA+j].SetInt64(1)
		}
	}
	return nil
}
