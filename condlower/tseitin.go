package condlower

import (
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// genTseitin recursively Tseitin-encodes expr and returns the literal
// representing it: recursively Tseitin-encode the
// Expr. Intermediate OR nodes allocate a fresh variable; AND nodes fold
// into the parent's clause." A top-level AND (one not nested directly
// under an OR) is still given a proper bidirectional Tseitin encoding via
// Solver.AddAndGate, since nothing above it can fold it away.
func genTseitin(engine *structenc.StructEngine, expr Expr) (satif.Lit, Size, error) {
	solver := engine.Solver()
	switch expr.Kind {
	case ExprConst1:
		baseC, baseL := solver.CnfSize()
		l := solver.NewVariable(false)
		solver.AddClause(l)
		afterC, afterL := solver.CnfSize()
		return l, Size{Clauses: afterC - baseC, Literals: afterL - baseL}, nil
	case ExprConst0:
		return 0, Size{}, ErrConstantZero
	case ExprLit:
		return engine.ConvToLiteral(expr.Lit), Size{}, nil
	case ExprAnd:
		lits, size, err := genChildren(engine, expr.Children)
		if err != nil {
			return 0, Size{}, err
		}
		if len(lits) == 1 {
			return lits[0], size, nil
		}
		baseC, baseL := solver.CnfSize()
		out := solver.NewVariable(false)
		solver.AddAndGate(out, lits...)
		afterC, afterL := solver.CnfSize()
		size = size.Add(Size{Clauses: afterC - baseC, Literals: afterL - baseL})
		return out, size, nil
	case ExprOr:
		return encodeOr(engine, expr.Children)
	default:
		return 0, Size{}, ErrConstantZero
	}
}

// genChildren Tseitin-encodes each of children and returns their
// literals plus the cumulative Size.
func genChildren(engine *structenc.StructEngine, children []Expr) ([]satif.Lit, Size, error) {
	lits := make([]satif.Lit, 0, len(children))
	var size Size
	for _, c := range children {
		l, s, err := genTseitin(engine, c)
		if err != nil {
			return nil, Size{}, err
		}
		lits = append(lits, l)
		size = size.Add(s)
	}
	return lits, size, nil
}

// encodeOr Tseitin-encodes an OR over children, folding any AND child
// into a one-directional (forward-implication-only) encoding rather than
// a full Solver.AddAndGate: an OR input only ever needs to be implied BY
// the disjunction's own activator, never to imply anything back, so the
// reverse clauses a full AND-gate encoding would add are pure overhead
// here. This is exactly naive's per-cube formula, generalized to nested
// Expr trees produced by factoring.
func encodeOr(engine *structenc.StructEngine, children []Expr) (satif.Lit, Size, error) {
	solver := engine.Solver()
	orInputs := make([]satif.Lit, 0, len(children))
	var size Size

	for _, c := range children {
		if c.Kind == ExprAnd {
			l, s, err := encodeAndOneDirectional(engine, c.Children)
			if err != nil {
				return 0, Size{}, err
			}
			orInputs = append(orInputs, l)
			size = size.Add(s)
			continue
		}
		l, s, err := genTseitin(engine, c)
		if err != nil {
			return 0, Size{}, err
		}
		orInputs = append(orInputs, l)
		size = size.Add(s)
	}

	baseC, baseL := solver.CnfSize()
	out := solver.NewVariable(false)
	clause := make([]satif.Lit, 0, len(orInputs)+1)
	clause = append(clause, out.Not())
	clause = append(clause, orInputs...)
	solver.AddClause(clause...)
	afterC, afterL := solver.CnfSize()
	size = size.Add(Size{Clauses: afterC - baseC, Literals: afterL - baseL})
	return out, size, nil
}

// encodeAndOneDirectional encodes an AND cube as an activator ai plus
// clauses (¬ai ∨ ℓ) for each operand ℓ, matching the naive method's "aᵢ →
// literal(ℓ)" rule for naive's per-cube encoding.
func encodeAndOneDirectional(engine *structenc.StructEngine, children []Expr) (satif.Lit, Size, error) {
	solver := engine.Solver()
	lits, size, err := genChildren(engine, children)
	if err != nil {
		return 0, Size{}, err
	}

	baseC, baseL := solver.CnfSize()
	ai := solver.NewVariable(false)
	for _, l := range lits {
		solver.AddClause(ai.Not(), l)
	}
	afterC, afterL := solver.CnfSize()
	size = size.Add(Size{Clauses: afterC - baseC, Literals: afterL - baseL})
	return ai, size, nil
}
