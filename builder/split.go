package builder

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// splitHint writes the n least significant bits of inputs[0], least
// significant first, one per output.
func splitHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	v := inputs[0]
	if v.BitLen() > len(outputs) {
		return fmt.Errorf("value of %d bits does not fit in %d", v.BitLen(), len(outputs))
	}
	for i := range outputs {
		outputs[i].SetUint64(uint64(v.Bit(i)))
	}
	return nil
}

// SplitAllowingAmbiguity decomposes x into n bits constrained only by
// booleanity and the joining identity Σ 2^i b_i = x. When 2^n exceeds the
// field order, a value can admit several valid decompositions; callers that
// need uniqueness use SplitBounded or Split.
func (builder *Builder) SplitAllowingAmbiguity(x frontend.Variable, n int) Binary {
	v := builder.toVariable(x)
	raw := builder.NewHint(splitHint, n, v)
	bits := make([]Boolean, n)
	for i, e := range raw {
		bits[i] = builder.AssertIsBoolean(e)
	}
	b := Binary{Bits: bits}
	builder.AssertIsEqual(builder.Join(b), v)
	return b
}

// SplitBounded decomposes x into exactly n bits. It requires 2^n <= field
// order, which makes the joining identity injective: the decomposition both
// proves x < 2^n and is unique. Panics when n is too large for the field.
func (builder *Builder) SplitBounded(x frontend.Variable, n int) Binary {
	max := new(big.Int).Lsh(big.NewInt(1), uint(n))
	if max.Cmp(builder.field.Field()) > 0 {
		panic(fmt.Sprintf("bounded split into %d bits is ambiguous over a %d-bit field",
			n, builder.field.FieldBitLen()))
	}
	return builder.SplitAllowingAmbiguity(x, n)
}

// Split decomposes x into its canonical FieldBitLen-bit representation. On
// top of the joining identity it constrains the bit vector to be strictly
// less than the field order, ruling out the wrapped-around alternative.
func (builder *Builder) Split(x frontend.Variable) Binary {
	n := builder.field.FieldBitLen()
	b := builder.SplitAllowingAmbiguity(x, n)
	order := builder.bigConstantBinary(builder.field.Field(), n)
	builder.AssertIsTrue(builder.IsLessBinary(b, order))
	return b
}

// bigConstantBinary builds a constant bit vector straight from a big.Int,
// without reducing it into the field first. Needed for bounds that equal the
// field order.
func (builder *Builder) bigConstantBinary(v *big.Int, n int) Binary {
	if v.BitLen() > n {
		panic(fmt.Sprintf("constant of %d bits does not fit in %d", v.BitLen(), n))
	}
	bits := make([]Boolean, n)
	for i := 0; i < n; i++ {
		if v.Bit(i) == 1 {
			bits[i] = builder.True()
		} else {
			bits[i] = builder.False()
		}
	}
	return Binary{Bits: bits}
}
