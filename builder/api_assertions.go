package builder

import (
	"github.com/consensys/gnark/frontend"

	"github.com/zkcollective/r1cs/gadget"
)

// AssertProduct records the constraint a*b = c. Together with Generator this
// is the only way constraints enter the system; every other assertion is
// sugar over it.
func (builder *Builder) AssertProduct(a, b, c frontend.Variable) {
	builder.checkNotBuilt()
	va := builder.toVariable(a)
	vb := builder.toVariable(b)
	vc := builder.toVariable(c)

	ca, aConst := builder.constantValue(va)
	cb, bConst := builder.constantValue(vb)
	cc, cConst := builder.constantValue(vc)
	if aConst && bConst && cConst {
		if builder.field.Mul(ca, cb) != cc {
			panic("assertion between constants will never be satisfied")
		}
		return
	}

	builder.constraints = append(builder.constraints, gadget.Constraint{
		A: va.Clone(), B: vb.Clone(), C: vc.Clone(),
	})
}

// AssertIsEqual records the constraint i1 == i2.
func (builder *Builder) AssertIsEqual(i1, i2 frontend.Variable) {
	x := builder.Sub(i1, i2)
	if v, ok := builder.constantValue(x); ok {
		if !v.IsZero() {
			panic("AssertIsEqual will never be satisfied on nonzero constant")
		}
		return
	}
	builder.AssertProduct(builder.eOne, x, builder.eZero)
}

// AssertIsZero records the constraint i == 0.
func (builder *Builder) AssertIsZero(i frontend.Variable) {
	builder.AssertIsEqual(i, builder.eZero)
}

// AssertIsNonZero constrains i to be invertible. The gadget becomes
// unsatisfiable when i evaluates to zero, because the inverse generator
// cannot complete.
func (builder *Builder) AssertIsNonZero(i frontend.Variable) {
	v := builder.toVariable(i)
	if c, ok := builder.constantValue(v); ok {
		if c.IsZero() {
			panic("AssertIsNonZero will never be satisfied on constant zero")
		}
		return
	}
	builder.Inverse(v)
}

// AssertIsBoolean records the constraint x*(x-1) = 0, once per expression.
func (builder *Builder) AssertIsBoolean(i frontend.Variable) Boolean {
	v := builder.toVariable(i)
	if c, ok := builder.constantValue(v); ok {
		if !(c.IsZero() || builder.field.IsOne(c)) {
			panic("AssertIsBoolean on a non-boolean constant")
		}
		return Boolean{Expr: v}
	}
	if !builder.isMarkedBoolean(v) {
		builder.AssertProduct(v, builder.Sub(v, builder.eOne), builder.eZero)
		builder.markBoolean(v)
	}
	return Boolean{Expr: v}
}

// AssertIsTrue constrains a Boolean to hold.
func (builder *Builder) AssertIsTrue(b Boolean) {
	builder.AssertIsEqual(b.Expr, builder.eOne)
}

// AssertIsFalse constrains a Boolean not to hold.
func (builder *Builder) AssertIsFalse(b Boolean) {
	builder.AssertIsEqual(b.Expr, builder.eZero)
}
