// Package expr implements the symbolic layer of the constraint system: wires
// and sparse linear combinations of wires with field coefficients.
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/gnark/constraint"

	"github.com/zkcollective/r1cs/utils"
)

// Wire is an opaque handle to one unknown value of a constraint system.
// Wires are allocated monotonically by a builder starting at 1; wire 0 is
// reserved for the constant 1.
type Wire int

// OneWire is the reserved wire whose value is always 1.
const OneWire Wire = 0

func (w Wire) String() string {
	if w == OneWire {
		return "1"
	}
	return fmt.Sprintf("w%d", int(w))
}

// Term is one coefficient*wire summand of an Expression.
type Term struct {
	WID   Wire
	Coeff constraint.Element
}

func NewTerm(w Wire, coeff constraint.Element) Term {
	return Term{WID: w, Coeff: coeff}
}

func (t Term) HashCode() uint64 {
	x := t.Coeff[0] ^ t.Coeff[1] ^ t.Coeff[2] ^ t.Coeff[3] ^ t.Coeff[4] ^ t.Coeff[5]
	x ^= uint64(t.WID) * 998244353
	return x
}

// Expression is a linear combination of wires. Terms are kept sorted by wire
// id and zero coefficients are pruned, so equivalent combinations compare and
// hash identically. The one exception is the canonical zero: a single
// zero-coefficient term on the constant wire, since an Expression is never
// empty.
type Expression []Term

// NewConstant returns the expression c (a single term on the constant wire).
func NewConstant(c constraint.Element) Expression {
	return Expression{NewTerm(OneWire, c)}
}

// NewLinear returns c * w.
func NewLinear(w Wire, c constraint.Element) Expression {
	return Expression{NewTerm(w, c)}
}

func (e Expression) Clone() Expression {
	res := make(Expression, len(e))
	copy(res, e)
	return res
}

// Len, Swap and Less implement sort.Interface over wire ids.
func (e Expression) Len() int { return len(e) }

func (e Expression) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e Expression) Less(i, j int) bool { return e[i].WID < e[j].WID }

// Equal returns true if both sorted expressions have identical terms.
func (e Expression) Equal(o Expression) bool {
	if len(e) != len(o) {
		return false
	}
	for i := 0; i < len(e); i++ {
		if e[i] != o[i] {
			return false
		}
	}
	return true
}

// EqualI lets expressions be keys of a utils.Map.
func (e Expression) EqualI(o utils.Hashable) bool {
	oe, ok := o.(Expression)
	return ok && e.Equal(oe)
}

// HashCode returns a fast, non-cryptographic hash of the sorted expression.
func (e Expression) HashCode() uint64 {
	h := uint64(17)
	for _, t := range e {
		h = h*23 + t.HashCode()
	}
	return h
}

// IsConstant reports whether the expression has no non-constant term.
func (e Expression) IsConstant() bool {
	for _, t := range e {
		if t.WID != OneWire {
			return false
		}
	}
	return true
}

// AsConstant returns the coefficient on the constant wire iff it is the only
// term of the expression.
func (e Expression) AsConstant() (constraint.Element, bool) {
	if len(e) == 0 {
		return constraint.Element{}, true
	}
	if len(e) == 1 && e[0].WID == OneWire {
		return e[0].Coeff, true
	}
	return constraint.Element{}, false
}

// Wires returns the non-constant wires the expression depends on, ascending.
func (e Expression) Wires() []Wire {
	res := make([]Wire, 0, len(e))
	for _, t := range e {
		if t.WID != OneWire {
			res = append(res, t.WID)
		}
	}
	return res
}

// ErrMissingAssignment is returned by Evaluate when a dependency wire has no
// value in the supplied valuation.
var ErrMissingAssignment = errors.New("expression depends on an unassigned wire")

// Valuation is a partial assignment of wires, queryable for membership.
// The constant wire must always report (1, true).
type Valuation interface {
	Value(Wire) (constraint.Element, bool)
}

// Evaluate computes the dot product of the coefficients with the assigned
// wire values. Every dependency must be present in the valuation.
func (e Expression) Evaluate(f constraint.Field, v Valuation) (constraint.Element, error) {
	res := constraint.Element{}
	for _, t := range e {
		x, ok := v.Value(t.WID)
		if !ok {
			return constraint.Element{}, fmt.Errorf("%w: %s", ErrMissingAssignment, t.WID)
		}
		res = f.Add(res, f.Mul(t.Coeff, x))
	}
	return res, nil
}

func (e Expression) String() string {
	if len(e) == 0 {
		return "0"
	}
	parts := make([]string, len(e))
	for i, t := range e {
		if t.WID == OneWire {
			parts[i] = fmt.Sprintf("%d", t.Coeff[0])
		} else {
			parts[i] = fmt.Sprintf("%d*%s", t.Coeff[0], t.WID)
		}
	}
	return strings.Join(parts, " + ")
}
