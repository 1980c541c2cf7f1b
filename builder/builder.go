// Package builder provides the mutable accumulation context through which
// circuits are described: wire allocation, constraint registration, witness
// generator registration, and the derived gadget operations built on those
// three primitives. A Builder is consumed by Build into an immutable
// gadget.Gadget.
//
// The builder is not safe for concurrent use; a built Gadget is.
package builder

import (
	"errors"
	"sort"

	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"

	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
	"github.com/zkcollective/r1cs/gadget"
	"github.com/zkcollective/r1cs/logger"
	"github.com/zkcollective/r1cs/utils"
)

// Builder accumulates the constraints and witness generators of one circuit
// construction session.
type Builder struct {
	field field.Field

	// next wire id; wire 0 is the constant 1
	nextWire expr.Wire

	constraints []gadget.Constraint
	generators  []gadget.Generator

	// expressions already constrained (or known by construction) to be 0/1,
	// so booleanity constraints are not emitted twice
	booleans utils.Map

	// widely used values
	tOne        constraint.Element
	eZero, eOne expr.Expression

	built bool
}

// New returns a builder over the given field engine.
func New(f field.Field) *Builder {
	b := &Builder{
		field:    f,
		nextWire: 1,
		booleans: make(utils.Map),
		tOne:     f.One(),
	}
	b.eZero = expr.NewConstant(constraint.Element{})
	b.eOne = expr.NewConstant(b.tOne)
	return b
}

// Field returns the prime order of the underlying field.
func (builder *Builder) Field() field.Field {
	return builder.field
}

func (builder *Builder) checkNotBuilt() {
	if builder.built {
		panic("builder already consumed by Build")
	}
}

// Wire allocates a fresh wire.
func (builder *Builder) Wire() expr.Wire {
	builder.checkNotBuilt()
	w := builder.nextWire
	builder.nextWire++
	return w
}

// Wires allocates n fresh wires.
func (builder *Builder) Wires(n int) []expr.Wire {
	res := make([]expr.Wire, n)
	for i := range res {
		res[i] = builder.Wire()
	}
	return res
}

// Expr returns the expression 1*w.
func (builder *Builder) Expr(w expr.Wire) expr.Expression {
	return expr.NewLinear(w, builder.tOne)
}

// Constant returns a constant expression from any integer-like value.
func (builder *Builder) Constant(v interface{}) expr.Expression {
	return expr.NewConstant(builder.field.FromInterface(v))
}

// One returns the constant-1 expression.
func (builder *Builder) One() expr.Expression { return builder.eOne }

// Zero returns the constant-0 expression.
func (builder *Builder) Zero() expr.Expression { return builder.eZero }

// Generator registers a witness generator: once all wires of the input
// expressions are assigned, f runs with the evaluated inputs and must
// produce one integer per output wire.
func (builder *Builder) Generator(inputs []expr.Expression, outputs []expr.Wire, f solver.Hint) {
	builder.checkNotBuilt()
	in := make([]expr.Expression, len(inputs))
	for i, e := range inputs {
		in[i] = e.Clone()
	}
	out := make([]expr.Wire, len(outputs))
	copy(out, outputs)
	builder.generators = append(builder.generators, gadget.Generator{
		Inputs:  in,
		Outputs: out,
		F:       f,
	})
}

// NewHint allocates nbOutputs fresh wires whose values will be computed by f
// at execution time from the inputs, and returns them as expressions. No
// constraint is added to the new wires; the caller must constrain them.
func (builder *Builder) NewHint(f solver.Hint, nbOutputs int, inputs ...frontend.Variable) []expr.Expression {
	hintInputs, _ := builder.toVariables(inputs...)
	outWires := builder.Wires(nbOutputs)
	builder.Generator(hintInputs, outWires, f)
	res := make([]expr.Expression, nbOutputs)
	for i, w := range outWires {
		res[i] = builder.Expr(w)
	}
	return res
}

// NbWires returns the number of wires allocated so far, the constant wire
// included.
func (builder *Builder) NbWires() int { return int(builder.nextWire) }

// NbConstraints returns the number of constraints registered so far.
func (builder *Builder) NbConstraints() int { return len(builder.constraints) }

// Build consumes the builder into an immutable Gadget. The builder must not
// be used afterwards.
func (builder *Builder) Build() *gadget.Gadget {
	builder.checkNotBuilt()
	builder.built = true
	log := logger.Logger()
	log.Debug().
		Int("nbWires", int(builder.nextWire)).
		Int("nbConstraints", len(builder.constraints)).
		Int("nbGenerators", len(builder.generators)).
		Msg("building gadget")
	return gadget.New(builder.field, int(builder.nextWire), builder.constraints, builder.generators)
}

// markBoolean records that e is known to evaluate to 0 or 1, so a later
// AssertIsBoolean on it is a no-op.
func (builder *Builder) markBoolean(e expr.Expression) {
	builder.booleans.Add(e, true)
}

func (builder *Builder) isMarkedBoolean(e expr.Expression) bool {
	_, ok := builder.booleans.Find(e)
	return ok
}

// constantValue returns the element v folds to, if v is a compile-time
// constant.
func (builder *Builder) constantValue(v expr.Expression) (constraint.Element, bool) {
	return v.AsConstant()
}

// assertIsSet panics on the zero value of Expression, which appears when a
// caller passes an uninitialized variable.
func assertIsSet(e expr.Expression) {
	if len(e) == 0 {
		panic(errors.New("can't determine API input value"))
	}
	if !sort.IsSorted(e) {
		panic("unsorted linear expression")
	}
}

// toVariable converts any supported input to an Expression: expressions and
// booleans pass through, everything else is interpreted as a constant.
func (builder *Builder) toVariable(input frontend.Variable) expr.Expression {
	switch t := input.(type) {
	case expr.Expression:
		assertIsSet(t)
		return t
	case *expr.Expression:
		assertIsSet(*t)
		return *t
	case Boolean:
		assertIsSet(t.Expr)
		return t.Expr
	case expr.Wire:
		return builder.Expr(t)
	case constraint.Element:
		return expr.NewConstant(t)
	case Binary:
		panic("a Binary must be joined before use as a variable")
	default:
		return expr.NewConstant(builder.field.FromInterface(t))
	}
}

func (builder *Builder) toVariables(in ...frontend.Variable) ([]expr.Expression, int) {
	r := make([]expr.Expression, 0, len(in))
	s := 0
	for _, i := range in {
		v := builder.toVariable(i)
		r = append(r, v)
		s += len(v)
	}
	return r, s
}
