package builder

import (
	"errors"
	"math/big"
	"sort"

	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
)

// ---------------------------------------------------------------------------------------------
// Linear arithmetic

// Add computes the sum i1+i2+...in and returns the result.
func (builder *Builder) Add(i1, i2 frontend.Variable, in ...frontend.Variable) expr.Expression {
	vars, s := builder.toVariables(append([]frontend.Variable{i1, i2}, in...)...)
	return builder.add(vars, false, s)
}

// Sub computes i1 - i2 - ...in and returns the result.
func (builder *Builder) Sub(i1, i2 frontend.Variable, in ...frontend.Variable) expr.Expression {
	vars, s := builder.toVariables(append([]frontend.Variable{i1, i2}, in...)...)
	return builder.add(vars, true, s)
}

// add returns Σ(vars), or vars[0] - Σ(vars[1:]) if sub is true. All terms are
// collected, sorted by wire, and merged; cancelled terms are pruned so the
// result is canonical.
func (builder *Builder) add(vars []expr.Expression, sub bool, capacity int) expr.Expression {
	all := make(expr.Expression, 0, capacity)
	for lID, v := range vars {
		for _, t := range v {
			if sub && lID != 0 {
				t.Coeff = builder.field.Neg(t.Coeff)
			}
			all = append(all, t)
		}
	}
	sort.Sort(all)

	res := make(expr.Expression, 0, len(all))
	for _, t := range all {
		if n := len(res); n > 0 && res[n-1].WID == t.WID {
			res[n-1].Coeff = builder.field.Add(res[n-1].Coeff, t.Coeff)
			if res[n-1].Coeff.IsZero() {
				res = res[:n-1]
			}
		} else if !t.Coeff.IsZero() {
			res = append(res, t)
		}
	}
	if len(res) == 0 {
		// keep the expression valid (assertIsSet)
		res = append(res, expr.NewTerm(expr.OneWire, constraint.Element{}))
	}
	return res
}

// Neg returns the negation of the given variable.
func (builder *Builder) Neg(i frontend.Variable) expr.Expression {
	v := builder.toVariable(i)
	if c, ok := builder.constantValue(v); ok {
		return expr.NewConstant(builder.field.Neg(c))
	}
	res := v.Clone()
	for i := range res {
		res[i].Coeff = builder.field.Neg(res[i].Coeff)
	}
	return res
}

func (builder *Builder) mulConstant(v expr.Expression, lambda constraint.Element) expr.Expression {
	if lambda.IsZero() {
		return builder.eZero
	}
	res := v.Clone()
	for i := range res {
		res[i].Coeff = builder.field.Mul(res[i].Coeff, lambda)
	}
	return res
}

// ---------------------------------------------------------------------------------------------
// Products

func productHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	outputs[0].Mul(inputs[0], inputs[1])
	return nil
}

// Product returns x*y. If either operand is a compile-time constant the
// result is a scaled expression with no new constraint or wire; otherwise a
// product wire p is allocated with the constraint x*y = p and a generator
// computing it.
func (builder *Builder) Product(x, y frontend.Variable) expr.Expression {
	vx := builder.toVariable(x)
	vy := builder.toVariable(y)

	cx, xConst := builder.constantValue(vx)
	cy, yConst := builder.constantValue(vy)
	if xConst && yConst {
		return expr.NewConstant(builder.field.Mul(cx, cy))
	}
	if xConst {
		return builder.mulConstant(vy, cx)
	}
	if yConst {
		return builder.mulConstant(vx, cy)
	}

	p := builder.NewHint(productHint, 1, vx, vy)[0]
	builder.AssertProduct(vx, vy, p)
	return p
}

// Mul computes the product of the given variables.
func (builder *Builder) Mul(i1, i2 frontend.Variable, in ...frontend.Variable) expr.Expression {
	res := builder.Product(i1, i2)
	for _, v := range in {
		res = builder.Product(res, v)
	}
	return res
}

// ---------------------------------------------------------------------------------------------
// Inverses and division

var errInverseOfZero = errors.New("no multiplicative inverse of zero")

func inverseHint(q *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if inputs[0].Sign() == 0 {
		return errInverseOfZero
	}
	outputs[0].ModInverse(inputs[0], q)
	return nil
}

func inverseOrZeroHint(q *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if inputs[0].Sign() == 0 {
		outputs[0].SetInt64(0)
		return nil
	}
	outputs[0].ModInverse(inputs[0], q)
	return nil
}

// Inverse returns x^-1. The gadget is unsatisfiable when x evaluates to zero:
// the generator cannot complete.
func (builder *Builder) Inverse(x frontend.Variable) expr.Expression {
	v := builder.toVariable(x)
	if c, ok := builder.constantValue(v); ok {
		inv, ok := builder.field.Inverse(c)
		if !ok {
			panic("inverse of constant zero")
		}
		return expr.NewConstant(inv)
	}
	inv := builder.NewHint(inverseHint, 1, v)[0]
	builder.AssertProduct(v, inv, builder.eOne)
	return inv
}

// InverseOrZero returns x^-1, or zero when x is zero, without making the
// gadget unsatisfiable.
func (builder *Builder) InverseOrZero(x frontend.Variable) expr.Expression {
	v := builder.toVariable(x)
	if c, ok := builder.constantValue(v); ok {
		return expr.NewConstant(field.InverseOrZero(builder.field, c))
	}
	m := builder.NewHint(inverseOrZeroHint, 1, v)[0]
	t := builder.Product(v, m)
	// x*(1 - x*m) = 0 pins m to the inverse for non-zero x;
	// m*(1 - x*m) = 0 pins m to zero for x = 0.
	builder.AssertProduct(v, builder.Sub(builder.eOne, t), builder.eZero)
	builder.AssertProduct(m, builder.Sub(builder.eOne, t), builder.eZero)
	return m
}

// Div returns x/y, i.e. x * Inverse(y). Unsatisfiable when y is zero.
func (builder *Builder) Div(x, y frontend.Variable) expr.Expression {
	return builder.Product(x, builder.Inverse(y))
}

func quoRemHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if inputs[1].Sign() == 0 {
		return errors.New("integer division by zero")
	}
	outputs[0].QuoRem(inputs[0], inputs[1], outputs[1])
	return nil
}

// QuoRem returns the quotient and remainder of integer division of the
// representatives of x and y: y*q = x - r with r < y.
func (builder *Builder) QuoRem(x, y frontend.Variable) (expr.Expression, expr.Expression) {
	vx := builder.toVariable(x)
	vy := builder.toVariable(y)
	qr := builder.NewHint(quoRemHint, 2, vx, vy)
	q, r := qr[0], qr[1]
	builder.AssertProduct(vy, q, builder.Sub(vx, r))
	builder.AssertIsLess(r, vy)
	return q, r
}

// ---------------------------------------------------------------------------------------------
// Exponentiation, selection, equality

// Exp returns x^e for a public exponent e, by square and multiply: one
// product per squaring step plus one per set bit.
func (builder *Builder) Exp(x frontend.Variable, e *big.Int) expr.Expression {
	if e.Sign() < 0 {
		panic("negative exponent")
	}
	v := builder.toVariable(x)
	res := builder.eOne
	for i := e.BitLen() - 1; i >= 0; i-- {
		res = builder.Product(res, res)
		if e.Bit(i) == 1 {
			res = builder.Product(res, v)
		}
	}
	return res
}

// Select returns ifTrue when cond holds, ifFalse otherwise, with a single
// multiplexer product.
func (builder *Builder) Select(cond Boolean, ifTrue, ifFalse frontend.Variable) expr.Expression {
	vt := builder.toVariable(ifTrue)
	vf := builder.toVariable(ifFalse)
	return builder.Add(vf, builder.Product(cond.Expr, builder.Sub(vt, vf)))
}

// IsZero returns a Boolean which holds iff x evaluates to zero.
func (builder *Builder) IsZero(x frontend.Variable) Boolean {
	v := builder.toVariable(x)
	if c, ok := builder.constantValue(v); ok {
		if c.IsZero() {
			return builder.True()
		}
		return builder.False()
	}
	m := builder.NewHint(inverseOrZeroHint, 1, v)[0]
	z := builder.Sub(builder.eOne, builder.Product(v, m))
	// x != 0 forces z = 0; x = 0 forces z = 1 through the product wire.
	builder.AssertProduct(v, z, builder.eZero)
	builder.markBoolean(z)
	return Boolean{Expr: z}
}

// IsEqual returns a Boolean which holds iff x and y evaluate to the same
// field element.
func (builder *Builder) IsEqual(x, y frontend.Variable) Boolean {
	return builder.IsZero(builder.Sub(x, y))
}

// RandomAccess returns items[index]. It costs O(n) constraints and is meant
// for small n only.
func (builder *Builder) RandomAccess(index frontend.Variable, items []frontend.Variable) expr.Expression {
	if len(items) == 0 {
		panic("random access on an empty list")
	}
	vi := builder.toVariable(index)
	acc := builder.eZero
	for i, item := range items {
		hit := builder.IsEqual(vi, builder.Constant(i))
		acc = builder.Add(acc, builder.Product(hit.Expr, item))
	}
	return acc
}
