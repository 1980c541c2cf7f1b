package gadget

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/constraint"

	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
)

// WireValues is a partial assignment of wires to field elements. It grows
// monotonically during execution; assigning the same wire twice is a
// programmer error and panics.
type WireValues struct {
	f      field.Field
	values []constraint.Element
	set    *bitset.BitSet
}

func NewWireValues(f field.Field, nbWires int) *WireValues {
	v := &WireValues{
		f:      f,
		values: make([]constraint.Element, nbWires),
		set:    bitset.New(uint(nbWires)),
	}
	v.values[expr.OneWire] = f.One()
	v.set.Set(uint(expr.OneWire))
	return v
}

// Set assigns a value to a wire.
func (v *WireValues) Set(w expr.Wire, x constraint.Element) {
	if int(w) < 0 || int(w) >= len(v.values) {
		panic(fmt.Sprintf("wire %s out of range", w))
	}
	if v.set.Test(uint(w)) {
		panic(fmt.Sprintf("wire %s assigned twice", w))
	}
	v.values[w] = x
	v.set.Set(uint(w))
}

// SetInterface converts any integer-like value through the field engine and
// assigns it.
func (v *WireValues) SetInterface(w expr.Wire, x interface{}) {
	v.Set(w, v.f.FromInterface(x))
}

// Value returns the element assigned to w. It implements expr.Valuation.
func (v *WireValues) Value(w expr.Wire) (constraint.Element, bool) {
	if int(w) < 0 || int(w) >= len(v.values) || !v.set.Test(uint(w)) {
		return constraint.Element{}, false
	}
	return v.values[w], true
}

// Has reports whether w is assigned.
func (v *WireValues) Has(w expr.Wire) bool {
	return int(w) >= 0 && int(w) < len(v.values) && v.set.Test(uint(w))
}

// NbAssigned returns the number of assigned wires, the constant included.
func (v *WireValues) NbAssigned() int {
	return int(v.set.Count())
}

// Clone returns an independent copy of the assignment.
func (v *WireValues) Clone() *WireValues {
	c := &WireValues{
		f:      v.f,
		values: make([]constraint.Element, len(v.values)),
		set:    v.set.Clone(),
	}
	copy(c.values, v.values)
	return c
}

// Equal reports whether two assignments cover the same wires with the same
// values.
func (v *WireValues) Equal(o *WireValues) bool {
	if len(v.values) != len(o.values) || !v.set.Equal(o.set) {
		return false
	}
	for i, x := range v.values {
		if v.set.Test(uint(i)) && x != o.values[i] {
			return false
		}
	}
	return true
}
