package builder

// AddBits adds two equal-length bit vectors with a ripple of full adders and
// returns the sum bits and the final carry.
func (builder *Builder) AddBits(a, b Binary, carryIn Boolean) (Binary, Boolean) {
	if len(a.Bits) != len(b.Bits) {
		panic("addition of bit vectors of different lengths")
	}
	bits := make([]Boolean, len(a.Bits))
	carry := carryIn
	for i := range bits {
		halfSum := builder.Xor(a.Bits[i], b.Bits[i])
		bits[i] = builder.Xor(halfSum, carry)
		// a·b and carry·(a xor b) cannot both hold, so the plain sum is
		// already boolean
		out := builder.Add(builder.And(a.Bits[i], b.Bits[i]).Expr,
			builder.And(carry, halfSum).Expr)
		builder.markBoolean(out)
		carry = Boolean{Expr: out}
	}
	return Binary{Bits: bits}, carry
}
