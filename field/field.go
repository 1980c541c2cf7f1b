// Package field defines the capability a prime field engine must provide to
// the constraint system, together with derived arithmetic helpers that are
// engine independent.
package field

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/consensys/gnark/constraint"
)

// Field is the capability describing a prime field. It extends gnark's
// coefficient arithmetic with the field order and its bit length. Engines
// must keep constraint.Element values canonical: two elements representing
// the same field value are limb-wise equal.
type Field interface {
	constraint.Field

	// Field returns the prime order of the field.
	Field() *big.Int
	// FieldBitLen returns the bit length of the prime order.
	FieldBitLen() int
}

// ErrDivisionByZero is returned when a multiplicative inverse of the additive
// identity is requested.
var ErrDivisionByZero = errors.New("field: division by zero")

// ErrOutOfRange is returned by FromBig for integers outside [0, order).
var ErrOutOfRange = errors.New("field: integer out of range")

// FromBig converts an already-reduced integer to a field element. Unlike
// FromInterface, which reduces, it fails on out-of-range input.
func FromBig(f Field, b *big.Int) (constraint.Element, error) {
	if b.Sign() < 0 || b.Cmp(f.Field()) >= 0 {
		return constraint.Element{}, ErrOutOfRange
	}
	return f.FromInterface(b), nil
}

// Inverse returns x^-1, or ErrDivisionByZero when x is zero. Callers that
// want a total function should use InverseOrZero.
func Inverse(f Field, x constraint.Element) (constraint.Element, error) {
	inv, ok := f.Inverse(x)
	if !ok {
		return constraint.Element{}, ErrDivisionByZero
	}
	return inv, nil
}

// InverseOrZero returns x^-1, mapping zero to zero.
func InverseOrZero(f Field, x constraint.Element) constraint.Element {
	inv, ok := f.Inverse(x)
	if !ok {
		return constraint.Element{}
	}
	return inv
}

// Div returns x*y^-1, or ErrDivisionByZero when y is zero.
func Div(f Field, x, y constraint.Element) (constraint.Element, error) {
	inv, err := Inverse(f, y)
	if err != nil {
		return constraint.Element{}, err
	}
	return f.Mul(x, inv), nil
}

// Exp returns x^e by binary exponentiation, where the exponent is the integer
// representative of e.
func Exp(f Field, x, e constraint.Element) constraint.Element {
	return ExpBig(f, x, f.ToBigInt(e))
}

// ExpBig returns x^e for a non-negative big integer exponent.
func ExpBig(f Field, x constraint.Element, e *big.Int) constraint.Element {
	res := f.One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		res = f.Mul(res, res)
		if e.Bit(i) == 1 {
			res = f.Mul(res, x)
		}
	}
	return res
}

// QuoRem performs integer division on the representatives of x and y,
// returning quotient and remainder as field elements. y must be non-zero.
func QuoRem(f Field, x, y constraint.Element) (constraint.Element, constraint.Element, error) {
	yb := f.ToBigInt(y)
	if yb.Sign() == 0 {
		return constraint.Element{}, constraint.Element{}, ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(f.ToBigInt(x), yb, new(big.Int))
	return f.FromInterface(q), f.FromInterface(r), nil
}

// Bit returns the i-th bit of the representative of x.
func Bit(f Field, x constraint.Element, i int) uint {
	return f.ToBigInt(x).Bit(i)
}

// BitLen returns the bit length of the representative of x.
func BitLen(f Field, x constraint.Element) int {
	return f.ToBigInt(x).BitLen()
}

// IsZero reports whether x is the additive identity.
func IsZero(f Field, x constraint.Element) bool {
	return f.ToBigInt(x).Sign() == 0
}

// Equal reports whether two elements represent the same field value.
func Equal(f Field, x, y constraint.Element) bool {
	return f.ToBigInt(x).Cmp(f.ToBigInt(y)) == 0
}

// Random samples a uniform field element. crypto/rand.Int performs the
// rejection sampling against the order's bit length.
func Random(f Field) constraint.Element {
	n, err := rand.Int(rand.Reader, f.Field())
	if err != nil {
		panic(err)
	}
	return f.FromInterface(n)
}
