package primitives

import (
	"math/big"

	"github.com/zkcollective/r1cs/builder"
	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
)

// MonomialPermutation is the map x -> x^e over a prime field. It is a
// bijection exactly when gcd(e, p-1) = 1; the inverse map is x -> x^d with
// d = e^-1 mod p-1.
type MonomialPermutation struct {
	exp, inv *big.Int
}

// NewMonomialPermutation panics when e is not coprime to p-1, since x^e is
// then not a permutation of the field.
func NewMonomialPermutation(f field.Field, e *big.Int) *MonomialPermutation {
	pm1 := new(big.Int).Sub(f.Field(), big.NewInt(1))
	d := new(big.Int)
	if d.ModInverse(e, pm1) == nil {
		panic("monomial exponent is not coprime to p-1, x^e is not a permutation")
	}
	return &MonomialPermutation{exp: new(big.Int).Set(e), inv: d}
}

func (m *MonomialPermutation) Permute(b *builder.Builder, x expr.Expression) expr.Expression {
	return b.Exp(x, m.exp)
}

func (m *MonomialPermutation) Invert(b *builder.Builder, y expr.Expression) expr.Expression {
	return b.Exp(y, m.inv)
}

var _ Permutation = (*MonomialPermutation)(nil)
