package builder

import (
	"fmt"

	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
	"github.com/zkcollective/r1cs/gadget"
)

// Boolean wraps an expression that is guaranteed, by construction or by an
// explicit constraint, to evaluate to 0 or 1. The wrapper carries no extra
// runtime state; it exists so gadgets can require boolean inputs in their
// signatures.
type Boolean struct {
	Expr expr.Expression
}

// Evaluate returns the truth value of the boolean under the assignment, and
// an error when the underlying value is neither 0 nor 1.
func (b Boolean) Evaluate(f field.Field, v *gadget.WireValues) (bool, error) {
	x, err := b.Expr.Evaluate(f, v)
	if err != nil {
		return false, err
	}
	if x.IsZero() {
		return false, nil
	}
	if f.IsOne(x) {
		return true, nil
	}
	return false, fmt.Errorf("boolean expression evaluates to %s", f.String(x))
}

// True returns the constant true Boolean.
func (builder *Builder) True() Boolean { return Boolean{Expr: builder.eOne} }

// False returns the constant false Boolean.
func (builder *Builder) False() Boolean { return Boolean{Expr: builder.eZero} }

// Bool constrains v to be 0 or 1 and returns it as a Boolean.
func (builder *Builder) Bool(v frontend.Variable) Boolean {
	return builder.AssertIsBoolean(v)
}

// Not returns !a.
func (builder *Builder) Not(a Boolean) Boolean {
	res := builder.Sub(builder.eOne, a.Expr)
	builder.markBoolean(res)
	return Boolean{Expr: res}
}

// And returns a && b with one product.
func (builder *Builder) And(a, b Boolean) Boolean {
	res := builder.Product(a.Expr, b.Expr)
	builder.markBoolean(res)
	return Boolean{Expr: res}
}

// Or returns a || b: a + b - a*b.
func (builder *Builder) Or(a, b Boolean) Boolean {
	res := builder.Sub(builder.Add(a.Expr, b.Expr), builder.Product(a.Expr, b.Expr))
	builder.markBoolean(res)
	return Boolean{Expr: res}
}

// Xor returns a != b: a + b - 2*a*b.
func (builder *Builder) Xor(a, b Boolean) Boolean {
	ab := builder.Product(a.Expr, b.Expr)
	res := builder.Sub(builder.Add(a.Expr, b.Expr), builder.Add(ab, ab))
	builder.markBoolean(res)
	return Boolean{Expr: res}
}

// ---------------------------------------------------------------------------------------------
// Binary

// Binary is a little-endian vector of Booleans viewed as one value. Its
// rearrangement operations add no constraints.
type Binary struct {
	Bits []Boolean
}

// NbBits returns the length of the bit vector.
func (b Binary) NbBits() int { return len(b.Bits) }

// falseBit is a constant 0 Boolean; the zero coefficient makes it engine
// independent.
func falseBit() Boolean {
	return Boolean{Expr: expr.NewConstant(constraint.Element{})}
}

// Truncate keeps the n least significant bits.
func (b Binary) Truncate(n int) Binary {
	if n > len(b.Bits) {
		panic("truncating to more bits than available")
	}
	return Binary{Bits: b.Bits[:n]}
}

// Pad extends the vector with constant zero bits up to n bits.
func (b Binary) Pad(n int) Binary {
	if n < len(b.Bits) {
		panic("padding to fewer bits than available")
	}
	bits := make([]Boolean, n)
	copy(bits, b.Bits)
	for i := len(b.Bits); i < n; i++ {
		bits[i] = falseBit()
	}
	return Binary{Bits: bits}
}

// Chunks partitions the vector into ⌈len/size⌉ chunks of at most size bits,
// least significant chunk first.
func (b Binary) Chunks(size int) []Binary {
	if size <= 0 {
		panic("chunk size must be positive")
	}
	var res []Binary
	for lo := 0; lo < len(b.Bits); lo += size {
		hi := lo + size
		if hi > len(b.Bits) {
			hi = len(b.Bits)
		}
		res = append(res, Binary{Bits: b.Bits[lo:hi]})
	}
	return res
}

// Reverse returns the bits in the opposite order.
func (b Binary) Reverse() Binary {
	bits := make([]Boolean, len(b.Bits))
	for i, x := range b.Bits {
		bits[len(bits)-1-i] = x
	}
	return Binary{Bits: bits}
}

// RotateLeft rotates the vector towards the most significant end by k.
func (b Binary) RotateLeft(k int) Binary {
	n := len(b.Bits)
	if n == 0 {
		return b
	}
	k = ((k % n) + n) % n
	bits := make([]Boolean, n)
	for i, x := range b.Bits {
		bits[(i+k)%n] = x
	}
	return Binary{Bits: bits}
}

// ShiftLeft shifts towards the most significant end by k, dropping high bits
// and filling with zeros.
func (b Binary) ShiftLeft(k int) Binary {
	n := len(b.Bits)
	bits := make([]Boolean, n)
	for i := 0; i < n; i++ {
		if i < k {
			bits[i] = falseBit()
		} else {
			bits[i] = b.Bits[i-k]
		}
	}
	return Binary{Bits: bits}
}

// ShiftRight shifts towards the least significant end by k.
func (b Binary) ShiftRight(k int) Binary {
	n := len(b.Bits)
	bits := make([]Boolean, n)
	for i := 0; i < n; i++ {
		if i+k < n {
			bits[i] = b.Bits[i+k]
		} else {
			bits[i] = falseBit()
		}
	}
	return Binary{Bits: bits}
}

// Join packs the bit vector into a single field expression, Σ 2^i * b_i.
// Panics when the bit count cannot fit in one field element.
func (builder *Builder) Join(b Binary) expr.Expression {
	if len(b.Bits) > builder.field.FieldBitLen() {
		panic(fmt.Sprintf("joining %d bits into a %d-bit field", len(b.Bits), builder.field.FieldBitLen()))
	}
	sum := builder.eZero
	c := builder.field.One()
	two := builder.field.FromInterface(2)
	for _, bit := range b.Bits {
		sum = builder.Add(sum, builder.mulConstant(bit.Expr, c))
		c = builder.field.Mul(c, two)
	}
	return sum
}

// ConstantBinary returns the n-bit constant vector for a non-negative value.
func (builder *Builder) ConstantBinary(v interface{}, n int) Binary {
	x := builder.field.ToBigInt(builder.field.FromInterface(v))
	if x.BitLen() > n {
		panic(fmt.Sprintf("constant of %d bits does not fit in %d", x.BitLen(), n))
	}
	bits := make([]Boolean, n)
	for i := 0; i < n; i++ {
		if x.Bit(i) == 1 {
			bits[i] = builder.True()
		} else {
			bits[i] = builder.False()
		}
	}
	return Binary{Bits: bits}
}

// ---------------------------------------------------------------------------------------------
// Bitwise operations

func (builder *Builder) bitwise(a, b Binary, op func(x, y Boolean) Boolean) Binary {
	if len(a.Bits) != len(b.Bits) {
		panic("bitwise operation on vectors of different lengths")
	}
	bits := make([]Boolean, len(a.Bits))
	for i := range bits {
		bits[i] = op(a.Bits[i], b.Bits[i])
	}
	return Binary{Bits: bits}
}

// AndBits returns the bitwise AND of two equal-length vectors.
func (builder *Builder) AndBits(a, b Binary) Binary {
	return builder.bitwise(a, b, builder.And)
}

// OrBits returns the bitwise OR of two equal-length vectors.
func (builder *Builder) OrBits(a, b Binary) Binary {
	return builder.bitwise(a, b, builder.Or)
}

// XorBits returns the bitwise XOR of two equal-length vectors.
func (builder *Builder) XorBits(a, b Binary) Binary {
	return builder.bitwise(a, b, builder.Xor)
}

// NotBits flips every bit.
func (builder *Builder) NotBits(a Binary) Binary {
	bits := make([]Boolean, len(a.Bits))
	for i, x := range a.Bits {
		bits[i] = builder.Not(x)
	}
	return Binary{Bits: bits}
}
