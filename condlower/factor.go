package condlower

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// lowerFactor implements the factor method: algebraically factor
// cover to share common sub-cubes before Tseitin-encoding it, producing
// smaller CNF when kernels are shared.
func lowerFactor(engine *structenc.StructEngine, cover []network.AssignList) (satif.Lit, Size, error) {
	expr := factorCover(cover)
	return genTseitin(engine, expr)
}

// factorCover greedily extracts a single-literal kernel shared by the
// most cubes, splits cover into the cubes that share it (factored as
// literal ∧ (residual sum-of-products)) and those that don't (factored
// recursively on their own), and ORs the two halves together. This is a
// simplified, single-literal form of algebraic factoring — enough to
// share a literal repeated across many cubes of a cover (the common
// case for FFR conditions, where a handful of side-input literals recur
// across most cubes) without implementing full multi-cube kernel/co-
// kernel extraction.
func factorCover(cover []network.AssignList) Expr {
	if len(cover) == 0 {
		return Or()
	}

	counts := make(map[network.Assign]int)
	for _, cube := range cover {
		for _, a := range cube {
			counts[a]++
		}
	}

	var best network.Assign
	bestCount := 1
	found := false
	for a, c := range counts {
		if c > bestCount {
			bestCount = c
			best = a
			found = true
		}
	}
	if !found {
		return flatCover(cover)
	}

	var withLit, without []network.AssignList
	for _, cube := range cover {
		hasIt := false
		var rest network.AssignList
		for _, a := range cube {
			if a == best {
				hasIt = true
				continue
			}
			rest, _ = rest.Add(a)
		}
		if hasIt {
			withLit = append(withLit, rest)
		} else {
			without = append(without, cube)
		}
	}

	factored := And(Lit(best), factorCover(withLit))
	if len(without) == 0 {
		return factored
	}
	return Or(factored, factorCover(without))
}

// flatCover builds a plain sum-of-products Expr with no further sharing,
// the base case factorCover bottoms out at once no literal recurs across
// more than one remaining cube.
func flatCover(cover []network.AssignList) Expr {
	cubes := make([]Expr, len(cover))
	for i, cube := range cover {
		lits := make([]Expr, len(cube))
		for j, a := range cube {
			lits[j] = Lit(a)
		}
		cubes[i] = And(lits...)
	}
	return Or(cubes...)
}
