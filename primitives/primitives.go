// Package primitives defines the capability contracts through which
// cryptographic building blocks plug into circuit construction: block
// ciphers, compression functions, permutations and hash functions expressed
// over expressions inside a supplied builder.
//
// Each contract comes with an Evaluate bridge that builds a throwaway gadget,
// executes it on the literal inputs, and reads the result back as a field
// element, for callers that want the concrete function rather than a circuit.
package primitives

import (
	"fmt"

	"github.com/consensys/gnark/constraint"

	"github.com/zkcollective/r1cs/builder"
	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
)

// BlockCipher is a keyed bijection over single field elements.
type BlockCipher interface {
	Encrypt(b *builder.Builder, key, input expr.Expression) expr.Expression
	Decrypt(b *builder.Builder, key, input expr.Expression) expr.Expression
}

// CompressionFunction reduces two field elements to one.
type CompressionFunction interface {
	Compress(b *builder.Builder, x, y expr.Expression) expr.Expression
}

// Permutation is an unkeyed bijection over single field elements.
type Permutation interface {
	Permute(b *builder.Builder, x expr.Expression) expr.Expression
	Invert(b *builder.Builder, y expr.Expression) expr.Expression
}

// MultiPermutation is an unkeyed bijection over fixed-width state vectors.
type MultiPermutation interface {
	Width() int
	Permute(b *builder.Builder, state []expr.Expression) []expr.Expression
	Invert(b *builder.Builder, state []expr.Expression) []expr.Expression
}

// HashFunction reduces a list of field elements to one.
type HashFunction interface {
	Hash(b *builder.Builder, inputs []expr.Expression) expr.Expression
}

// evaluate bridges the symbolic and concrete worlds: it allocates one wire
// per input, applies fn symbolically, builds the gadget, executes it on the
// literal inputs and evaluates the output expressions under the completed
// assignment.
func evaluate(f field.Field, inputs []constraint.Element,
	fn func(b *builder.Builder, in []expr.Expression) []expr.Expression) ([]constraint.Element, error) {

	b := builder.New(f)
	wires := b.Wires(len(inputs))
	in := make([]expr.Expression, len(wires))
	for i, w := range wires {
		in[i] = b.Expr(w)
	}
	outs := fn(b, in)

	g := b.Build()
	v := g.NewWireValues()
	for i, w := range wires {
		v.Set(w, inputs[i])
	}
	ok, err := g.Execute(v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("evaluation gadget is unsatisfiable on the given inputs")
	}

	res := make([]constraint.Element, len(outs))
	for i, e := range outs {
		res[i], err = e.Evaluate(f, v)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// EvaluateEncrypt computes the cipher concretely.
func EvaluateEncrypt(f field.Field, c BlockCipher, key, input constraint.Element) (constraint.Element, error) {
	out, err := evaluate(f, []constraint.Element{key, input},
		func(b *builder.Builder, in []expr.Expression) []expr.Expression {
			return []expr.Expression{c.Encrypt(b, in[0], in[1])}
		})
	if err != nil {
		return constraint.Element{}, err
	}
	return out[0], nil
}

// EvaluateDecrypt computes the inverse cipher concretely.
func EvaluateDecrypt(f field.Field, c BlockCipher, key, input constraint.Element) (constraint.Element, error) {
	out, err := evaluate(f, []constraint.Element{key, input},
		func(b *builder.Builder, in []expr.Expression) []expr.Expression {
			return []expr.Expression{c.Decrypt(b, in[0], in[1])}
		})
	if err != nil {
		return constraint.Element{}, err
	}
	return out[0], nil
}

// EvaluateCompress computes the compression function concretely.
func EvaluateCompress(f field.Field, c CompressionFunction, x, y constraint.Element) (constraint.Element, error) {
	out, err := evaluate(f, []constraint.Element{x, y},
		func(b *builder.Builder, in []expr.Expression) []expr.Expression {
			return []expr.Expression{c.Compress(b, in[0], in[1])}
		})
	if err != nil {
		return constraint.Element{}, err
	}
	return out[0], nil
}

// EvaluatePermute computes the permutation concretely.
func EvaluatePermute(f field.Field, p Permutation, x constraint.Element) (constraint.Element, error) {
	out, err := evaluate(f, []constraint.Element{x},
		func(b *builder.Builder, in []expr.Expression) []expr.Expression {
			return []expr.Expression{p.Permute(b, in[0])}
		})
	if err != nil {
		return constraint.Element{}, err
	}
	return out[0], nil
}

// EvaluateInvert computes the inverse permutation concretely.
func EvaluateInvert(f field.Field, p Permutation, y constraint.Element) (constraint.Element, error) {
	out, err := evaluate(f, []constraint.Element{y},
		func(b *builder.Builder, in []expr.Expression) []expr.Expression {
			return []expr.Expression{p.Invert(b, in[0])}
		})
	if err != nil {
		return constraint.Element{}, err
	}
	return out[0], nil
}

// EvaluateMultiPermute computes the state permutation concretely.
func EvaluateMultiPermute(f field.Field, p MultiPermutation, state []constraint.Element) ([]constraint.Element, error) {
	if len(state) != p.Width() {
		return nil, fmt.Errorf("state width %d, permutation expects %d", len(state), p.Width())
	}
	return evaluate(f, state, func(b *builder.Builder, in []expr.Expression) []expr.Expression {
		return p.Permute(b, in)
	})
}

// EvaluateHash computes the hash concretely.
func EvaluateHash(f field.Field, h HashFunction, inputs []constraint.Element) (constraint.Element, error) {
	out, err := evaluate(f, inputs,
		func(b *builder.Builder, in []expr.Expression) []expr.Expression {
			return []expr.Expression{h.Hash(b, in)}
		})
	if err != nil {
		return constraint.Element{}, err
	}
	return out[0], nil
}
