// Package prime implements a field engine for an arbitrary prime order
// supplied at runtime. Elements store their reduced value in plain (non
// Montgomery) form across the constraint.Element limbs, little endian.
//
// It trades the speed of a specialized engine for the ability to work over
// any prime up to 384 bits, which is what the small test fields and
// non-standard moduli need.
package prime

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint"

	"github.com/zkcollective/r1cs/utils"
)

const maxBits = 6 * 64

type Field struct {
	p    *big.Int
	bits int
}

// NewField returns an engine for the field of the given prime order.
// Panics on a non-prime or oversized modulus: a bad modulus is a
// construction-time programmer error.
func NewField(p *big.Int) *Field {
	if p.Sign() <= 0 || !p.ProbablyPrime(20) {
		panic(fmt.Sprintf("prime: modulus %s is not prime", p))
	}
	if p.BitLen() > maxBits {
		panic(fmt.Sprintf("prime: modulus of %d bits exceeds %d", p.BitLen(), maxBits))
	}
	return &Field{p: new(big.Int).Set(p), bits: p.BitLen()}
}

func (f *Field) toBig(c constraint.Element) *big.Int {
	r := new(big.Int)
	t := new(big.Int)
	for i := 5; i >= 0; i-- {
		r.Lsh(r, 64)
		r.Or(r, t.SetUint64(c[i]))
	}
	return r
}

// fromBig packs a reduced non-negative integer into element limbs.
func (f *Field) fromBig(b *big.Int) constraint.Element {
	var r constraint.Element
	t := new(big.Int).Set(b)
	mask := new(big.Int).SetUint64(^uint64(0))
	for i := 0; i < 6 && t.Sign() != 0; i++ {
		r[i] = new(big.Int).And(t, mask).Uint64()
		t.Rsh(t, 64)
	}
	return r
}

func (f *Field) FromInterface(i interface{}) constraint.Element {
	b := utils.FromInterface(i)
	b.Mod(&b, f.p)
	return f.fromBig(&b)
}

func (f *Field) ToBigInt(c constraint.Element) *big.Int {
	return f.toBig(c)
}

func (f *Field) Add(a, b constraint.Element) constraint.Element {
	r := f.toBig(a)
	r.Add(r, f.toBig(b))
	if r.Cmp(f.p) >= 0 {
		r.Sub(r, f.p)
	}
	return f.fromBig(r)
}

func (f *Field) Sub(a, b constraint.Element) constraint.Element {
	r := f.toBig(a)
	r.Sub(r, f.toBig(b))
	if r.Sign() < 0 {
		r.Add(r, f.p)
	}
	return f.fromBig(r)
}

func (f *Field) Neg(a constraint.Element) constraint.Element {
	r := f.toBig(a)
	if r.Sign() == 0 {
		return constraint.Element{}
	}
	return f.fromBig(r.Sub(f.p, r))
}

func (f *Field) Mul(a, b constraint.Element) constraint.Element {
	r := f.toBig(a)
	r.Mul(r, f.toBig(b))
	r.Mod(r, f.p)
	return f.fromBig(r)
}

// Inverse computes a^-1 via Fermat's little theorem (a^(p-2) mod p).
// The second return value is false for the zero element.
func (f *Field) Inverse(a constraint.Element) (constraint.Element, bool) {
	b := f.toBig(a)
	if b.Sign() == 0 {
		return constraint.Element{}, false
	}
	e := new(big.Int).Sub(f.p, big.NewInt(2))
	b.Exp(b, e, f.p)
	return f.fromBig(b), true
}

func (f *Field) One() constraint.Element {
	return constraint.Element{1}
}

func (f *Field) IsOne(a constraint.Element) bool {
	return a[0] == 1 && a[1] == 0 && a[2] == 0 && a[3] == 0 && a[4] == 0 && a[5] == 0
}

func (f *Field) String(a constraint.Element) string {
	return f.toBig(a).String()
}

func (f *Field) Uint64(a constraint.Element) (uint64, bool) {
	b := f.toBig(a)
	if !b.IsUint64() {
		return 0, false
	}
	return b.Uint64(), true
}

func (f *Field) Field() *big.Int {
	return new(big.Int).Set(f.p)
}

func (f *Field) FieldBitLen() int {
	return f.bits
}
