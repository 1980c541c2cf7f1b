// Package gadget holds the built artifact of a circuit construction session:
// an ordered list of rank-1 constraints, a list of witness generators, and
// the fixed-point execution procedure that completes a partial assignment and
// checks satisfiability.
package gadget

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/constraint/solver"

	"github.com/zkcollective/r1cs/expr"
	"github.com/zkcollective/r1cs/field"
	"github.com/zkcollective/r1cs/logger"
)

// Constraint is one algebraic fact a*b = c over linear combinations of wires.
type Constraint struct {
	A, B, C expr.Expression
}

// Check evaluates the constraint against an assignment. The error is non-nil
// when a dependency wire is unassigned.
func (c Constraint) Check(f field.Field, v *WireValues) (bool, error) {
	a, err := c.A.Evaluate(f, v)
	if err != nil {
		return false, err
	}
	b, err := c.B.Evaluate(f, v)
	if err != nil {
		return false, err
	}
	cc, err := c.C.Evaluate(f, v)
	if err != nil {
		return false, err
	}
	return f.Mul(a, b) == cc, nil
}

func (c Constraint) String() string {
	return fmt.Sprintf("(%s) * (%s) = %s", c.A, c.B, c.C)
}

// Generator is a unit of non-deterministic computation. Once the wires of all
// input expressions are assigned, the procedure runs with the evaluated
// inputs and must produce one integer per output wire. The procedure has the
// gnark hint signature, so hints written for gnark's solver can be reused.
type Generator struct {
	Inputs  []expr.Expression
	Outputs []expr.Wire
	F       solver.Hint
}

// ready reports whether every dependency of the generator is assigned.
func (g *Generator) ready(v *WireValues) bool {
	for _, e := range g.Inputs {
		for _, t := range e {
			if !v.Has(t.WID) {
				return false
			}
		}
	}
	return true
}

func (g *Generator) run(f field.Field, v *WireValues) error {
	in := make([]*big.Int, len(g.Inputs))
	for i, e := range g.Inputs {
		x, err := e.Evaluate(f, v)
		if err != nil {
			return err
		}
		in[i] = f.ToBigInt(x)
	}
	out := make([]*big.Int, len(g.Outputs))
	for i := range out {
		out[i] = big.NewInt(0)
	}
	if err := g.F(f.Field(), in, out); err != nil {
		return err
	}
	for i, w := range g.Outputs {
		v.Set(w, f.FromInterface(out[i]))
	}
	return nil
}

// Gadget is the immutable result of Builder.Build: the constraints and
// generators of one circuit, with a fixed wire count. A Gadget is safe to
// share between goroutines; all mutation happens on WireValues.
type Gadget struct {
	f           field.Field
	nbWires     int
	constraints []Constraint
	generators  []Generator
}

// New assembles a gadget. The slices are owned by the gadget afterwards.
func New(f field.Field, nbWires int, cs []Constraint, gens []Generator) *Gadget {
	return &Gadget{f: f, nbWires: nbWires, constraints: cs, generators: gens}
}

func (g *Gadget) Field() field.Field { return g.f }

// NbWires returns the number of wires, the constant wire included.
func (g *Gadget) NbWires() int { return g.nbWires }

func (g *Gadget) NbConstraints() int { return len(g.constraints) }

func (g *Gadget) NbGenerators() int { return len(g.generators) }

// Constraints returns the constraints in registration order.
func (g *Gadget) Constraints() []Constraint { return g.constraints }

// NewWireValues returns an empty assignment sized for this gadget, with the
// constant wire set to 1.
func (g *Gadget) NewWireValues() *WireValues {
	return NewWireValues(g.f, g.nbWires)
}

// Execute completes the assignment by running generators to a fixed point,
// then checks every constraint in registration order.
//
// The boolean result is the normal success/failure signal: false means the
// starting assignment does not satisfy the gadget, including the case of a
// generator that cannot complete (an unsatisfiable witness). A non-nil error
// means a constraint touched a wire that was never assigned, i.e. the
// assignment was incomplete or a generator dependency was never met; that is
// a caller bug, not prover data.
func (g *Gadget) Execute(v *WireValues) (bool, error) {
	log := logger.Logger()

	executed := bitset.New(uint(len(g.generators)))
	for progressed := true; progressed; {
		progressed = false
		for i := range g.generators {
			gen := &g.generators[i]
			if executed.Test(uint(i)) || !gen.ready(v) {
				continue
			}
			executed.Set(uint(i))
			progressed = true
			if err := gen.run(g.f, v); err != nil {
				// The witness cannot be completed; by convention this is
				// equivalent to "inputs do not satisfy the gadget".
				log.Debug().Int("generator", i).Err(err).Msg("witness generation failed")
				return false, nil
			}
		}
	}
	if n := executed.Count(); int(n) != len(g.generators) {
		log.Debug().Uint("executed", uint(n)).Int("total", len(g.generators)).
			Msg("generator fixed point reached with pending generators")
	}

	for i, c := range g.constraints {
		ok, err := c.Check(g.f, v)
		if err != nil {
			return false, fmt.Errorf("constraint %d: %w", i, err)
		}
		if !ok {
			log.Debug().Int("constraint", i).Str("detail", c.String()).Msg("constraint violated")
			return false, nil
		}
	}
	return true, nil
}
