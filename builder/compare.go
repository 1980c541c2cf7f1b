package builder

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/zkcollective/r1cs/expr"
)

// The comparison gadget works on chunked bit vectors: both operands are cut
// into chunks of chunkBits bits, a non-deterministic mask points at the most
// significant chunk where they differ, and a small subtractive sub-gadget on
// that one chunk pair decides the comparison. The chunk size is a genuine
// trade-off (more chunks mean fewer per-chunk bits but more boundary work),
// so it is chosen by exhaustive search over the closed-form constraint count.

// comparisonCost is the constraint count of one chunked comparison:
// three constraints per chunk (mask booleanity, upper-equality product,
// masked-difference product), two boundary constraints, and one per bit of
// the final bounded split.
func comparisonCost(operandBits, chunkBits int) int {
	nbChunks := (operandBits + chunkBits - 1) / chunkBits
	return 3*nbChunks + 2 + chunkBits
}

// chooseChunkBits returns the chunk size minimizing comparisonCost. The
// search stops two short of the field bit length so that the final split
// into chunkBits+1 bits stays unambiguous.
func (builder *Builder) chooseChunkBits(operandBits int) int {
	best, bestCost := 1, comparisonCost(operandBits, 1)
	for c := 2; c <= builder.field.FieldBitLen()-2; c++ {
		if cost := comparisonCost(operandBits, c); cost < bestCost {
			best, bestCost = c, cost
		}
	}
	return best
}

// maskHint marks the most significant chunk index where the two operands
// differ. Inputs are the x chunks followed by the y chunks; outputs are one
// bit per chunk, all zero when the operands are equal.
func maskHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	n := len(outputs)
	for i := range outputs {
		outputs[i].SetInt64(0)
	}
	for i := n - 1; i >= 0; i-- {
		if inputs[i].Cmp(inputs[n+i]) != 0 {
			outputs[i].SetInt64(1)
			break
		}
	}
	return nil
}

// compare returns x < y (less, strict), x ≤ y (less, non-strict), x > y or
// x ≥ y over the values of two equal-length bit vectors.
func (builder *Builder) compare(x, y Binary, strict, less bool) Boolean {
	if x.NbBits() != y.NbBits() {
		panic("comparison between bit vectors of different lengths")
	}
	chunkBits := builder.chooseChunkBits(x.NbBits())

	xcs := x.Chunks(chunkBits)
	ycs := y.Chunks(chunkBits)
	nbChunks := len(xcs)
	xc := make([]expr.Expression, nbChunks)
	yc := make([]expr.Expression, nbChunks)
	maskIn := make([]frontend.Variable, 0, 2*nbChunks)
	for i := range xcs {
		xc[i] = builder.Join(xcs[i])
		yc[i] = builder.Join(ycs[i])
	}
	for _, e := range xc {
		maskIn = append(maskIn, e)
	}
	for _, e := range yc {
		maskIn = append(maskIn, e)
	}

	// selected difference of the masked chunk, and the running count of mask
	// bits below the current chunk
	diff := builder.eZero
	maskSum := builder.eZero
	if nbChunks > 0 {
		mask := builder.NewHint(maskHint, nbChunks, maskIn...)
		diffSeen := builder.eZero
		for i := 0; i < nbChunks; i++ {
			m := builder.AssertIsBoolean(mask[i])
			// every chunk above the masked one must agree
			builder.AssertProduct(diffSeen, builder.Sub(xc[i], yc[i]), builder.eZero)
			diff = builder.Add(diff, builder.Product(m.Expr, builder.Sub(xc[i], yc[i])))
			diffSeen = builder.Add(diffSeen, m.Expr)
			maskSum = diffSeen
		}
		// at most one mask bit set
		builder.AssertIsBoolean(maskSum)
	}

	if !strict {
		// a set mask bit must point at a chunk that actually differs; with no
		// mask bit set the sentinel constant keeps the selected value
		// invertible
		sel := builder.Add(diff, builder.Sub(builder.eOne, maskSum))
		builder.AssertIsNonZero(sel)
	}

	// s = 2^chunkBits ± diff, minus one for strict inequalities; its top bit
	// after a bounded split is the comparison result.
	pow := builder.Constant(new(big.Int).Lsh(big.NewInt(1), uint(chunkBits)))
	var s expr.Expression
	if less {
		s = builder.Sub(pow, diff)
	} else {
		s = builder.Add(pow, diff)
	}
	if strict {
		s = builder.Sub(s, builder.eOne)
	}
	bits := builder.SplitBounded(s, chunkBits+1)
	return bits.Bits[chunkBits]
}

// IsLessBinary returns x < y over the values of two equal-length bit vectors.
func (builder *Builder) IsLessBinary(x, y Binary) Boolean {
	return builder.compare(x, y, true, true)
}

// IsLessEqBinary returns x ≤ y over two equal-length bit vectors.
func (builder *Builder) IsLessEqBinary(x, y Binary) Boolean {
	return builder.compare(x, y, false, true)
}

// IsGreaterBinary returns x > y over two equal-length bit vectors.
func (builder *Builder) IsGreaterBinary(x, y Binary) Boolean {
	return builder.compare(x, y, true, false)
}

// IsGreaterEqBinary returns x ≥ y over two equal-length bit vectors.
func (builder *Builder) IsGreaterEqBinary(x, y Binary) Boolean {
	return builder.compare(x, y, false, false)
}

// comparisonOperands splits both operands to full field width. The ambiguous
// split suffices here: the generator always produces the canonical
// decomposition, and the subtractive step tolerates either side.
func (builder *Builder) comparisonOperands(x, y frontend.Variable) (Binary, Binary) {
	n := builder.field.FieldBitLen()
	return builder.SplitAllowingAmbiguity(x, n), builder.SplitAllowingAmbiguity(y, n)
}

// IsLess returns x < y over the canonical integer representatives of two
// field elements.
func (builder *Builder) IsLess(x, y frontend.Variable) Boolean {
	bx, by := builder.comparisonOperands(x, y)
	return builder.IsLessBinary(bx, by)
}

// IsLessEq returns x ≤ y over canonical representatives.
func (builder *Builder) IsLessEq(x, y frontend.Variable) Boolean {
	bx, by := builder.comparisonOperands(x, y)
	return builder.IsLessEqBinary(bx, by)
}

// IsGreater returns x > y over canonical representatives.
func (builder *Builder) IsGreater(x, y frontend.Variable) Boolean {
	bx, by := builder.comparisonOperands(x, y)
	return builder.IsGreaterBinary(bx, by)
}

// IsGreaterEq returns x ≥ y over canonical representatives.
func (builder *Builder) IsGreaterEq(x, y frontend.Variable) Boolean {
	bx, by := builder.comparisonOperands(x, y)
	return builder.IsGreaterEqBinary(bx, by)
}

// AssertIsLess constrains x < y over canonical representatives.
func (builder *Builder) AssertIsLess(x, y frontend.Variable) {
	builder.AssertIsTrue(builder.IsLess(x, y))
}

// AssertIsLessEq constrains x ≤ y over canonical representatives.
func (builder *Builder) AssertIsLessEq(x, y frontend.Variable) {
	builder.AssertIsTrue(builder.IsLessEq(x, y))
}

// AssertIsGreater constrains x > y over canonical representatives.
func (builder *Builder) AssertIsGreater(x, y frontend.Variable) {
	builder.AssertIsTrue(builder.IsGreater(x, y))
}

// AssertIsGreaterEq constrains x ≥ y over canonical representatives.
func (builder *Builder) AssertIsGreaterEq(x, y frontend.Variable) {
	builder.AssertIsTrue(builder.IsGreaterEq(x, y))
}
