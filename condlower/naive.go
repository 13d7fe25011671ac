package condlower

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// lowerNaive implements the naive method directly against cover,
// without going through the generic Expr/Tseitin pipeline cover/factor/
// aig share: for each cube Cᵢ, allocate aᵢ with clauses aᵢ → ℓ for each
// ℓ∈Cᵢ; allocate a top-level a with the single forward clause a →
// OR(a₁,...,aₙ). Size per FFR: Σ|Cᵢ|+1 clauses, Σ2|Cᵢ|+|cover|+1
// literals — the closed-form count a hand-rolled loop verifies
// directly.
func lowerNaive(engine *structenc.StructEngine, cover []network.AssignList) (satif.Lit, Size, error) {
	solver := engine.Solver()
	activators := make([]satif.Lit, len(cover))
	var size Size

	for i, cube := range cover {
		baseC, baseL := solver.CnfSize()
		ai := solver.NewVariable(false)
		for _, a := range cube {
			solver.AddClause(ai.Not(), engine.ConvToLiteral(a))
		}
		afterC, afterL := solver.CnfSize()
		size = size.Add(Size{Clauses: afterC - baseC, Literals: afterL - baseL})
		activators[i] = ai
	}

	baseC, baseL := solver.CnfSize()
	top := solver.NewVariable(false)
	clause := make([]satif.Lit, 0, len(activators)+1)
	clause = append(clause, top.Not())
	clause = append(clause, activators...)
	solver.AddClause(clause...)
	afterC, afterL := solver.CnfSize()
	size = size.Add(Size{Clauses: afterC - baseC, Literals: afterL - baseL})

	return top, size, nil
}
