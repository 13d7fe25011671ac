package condlower

import "github.com/atpg-sat/satcore/network"

// ExprKind is the closed set of Expr node variants.
type ExprKind int

const (
	// ExprConst1 is the constant true leaf (the empty cube / empty cover
	// of literals that are always satisfied).
	ExprConst1 ExprKind = iota
	// ExprConst0 is the constant false leaf. calc_cnf_size treats this as
	// a structural error;
	// it only arises as an intermediate value, never a final Expr handed
	// to a lowering method.
	ExprConst0
	// ExprLit is a literal leaf: one Assign from a DetCond's mandatory
	// cube or cover.
	ExprLit
	// ExprAnd is a conjunction of Children (one cube's literals).
	ExprAnd
	// ExprOr is a disjunction of Children (the cover's cubes, or
	// factored sub-expressions).
	ExprOr
)

// Expr is a Boolean expression tree over network.Assign literals,
// produced from a DetCond's mandatory+cover by BuildExpr (or from a
// cover by factorCover) and consumed by the cover/factor/aig lowering
// methods and by the size estimator.
type Expr struct {
	Kind     ExprKind
	Lit      network.Assign // meaningful only when Kind == ExprLit
	Children []Expr         // meaningful only when Kind == ExprAnd/ExprOr
}

// Const1 returns the constant-true Expr.
func Const1() Expr { return Expr{Kind: ExprConst1} }

// Const0 returns the constant-false Expr.
func Const0() Expr { return Expr{Kind: ExprConst0} }

// Lit returns a literal Expr for a.
func Lit(a network.Assign) Expr { return Expr{Kind: ExprLit, Lit: a} }

// And returns the conjunction of children. An empty conjunction is
// Const1 (vacuously true), matching the empty-cube convention used
// elsewhere (network.AssignList's own empty-list-is-satisfied reading).
func And(children ...Expr) Expr {
	if len(children) == 0 {
		return Const1()
	}
	return Expr{Kind: ExprAnd, Children: children}
}

// Or returns the disjunction of children. An empty disjunction is
// Const0 (vacuously false: an empty cover covers nothing).
func Or(children ...Expr) Expr {
	if len(children) == 0 {
		return Const0()
	}
	return Expr{Kind: ExprOr, Children: children}
}

// BuildExpr converts a DetCond's mandatory cube and cover into a single
// Expr: mandatory ∧ (cube₁ ∨ cube₂ ∨ ... ∨ cubeₙ), where each cubeᵢ is
// itself the conjunction of its own Assigns. The cover and aig methods
// lower this Expr as built, and the naive/cover size estimate measures
// it; the naive method lowers the cover directly without an Expr, and
// the factor method builds its Expr with factorCover instead.
func BuildExpr(mandatory network.AssignList, cover []network.AssignList) Expr {
	mand := make([]Expr, len(mandatory))
	for i, a := range mandatory {
		mand[i] = Lit(a)
	}

	cubes := make([]Expr, len(cover))
	for i, cube := range cover {
		lits := make([]Expr, len(cube))
		for j, a := range cube {
			lits[j] = Lit(a)
		}
		cubes[i] = And(lits...)
	}

	if len(mand) == 0 {
		return Or(cubes...)
	}
	return And(append(mand, Or(cubes...))...)
}
