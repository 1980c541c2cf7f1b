package field

import (
	"math/big"

	"github.com/zkcollective/r1cs/field/bn254"
	"github.com/zkcollective/r1cs/field/goldilocks"
	"github.com/zkcollective/r1cs/field/prime"
)

// ForOrder returns an engine for the field of the given prime order,
// preferring a specialized engine when one exists.
func ForOrder(p *big.Int) Field {
	if p.Cmp(bn254.ScalarField) == 0 {
		return &bn254.Field{}
	}
	if p.Cmp(goldilocks.ScalarField) == 0 {
		return &goldilocks.Field{}
	}
	return prime.NewField(p)
}
