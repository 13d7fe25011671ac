package condlower

// Size is the (clauses, literals) pair every estimator and lowering
// method reports.
type Size struct {
	Clauses  int
	Literals int
}

// Add returns the pairwise sum of s and other.
func (s Size) Add(other Size) Size {
	return Size{Clauses: s.Clauses + other.Clauses, Literals: s.Literals + other.Literals}
}

// CalcCNFSize estimates the naive/cover/factor Tseitin-encoding size of
// expr without materializing any clause:
//   - a literal or Const1 leaf contributes (0, 0) and has arity 1;
//   - Const0 is a structural error (ErrConstantZero);
//   - AND sums its children's estimates and arities;
//   - OR with n children: for each child whose arity > 1, first pay the
//     cost of AND-rewriting that child into a single activator
//     ((n_child, 2*n_child) clauses/literals), then pay (1, n+1) for the
//     top-level OR clause itself; an OR's own arity is always 1 (it
//     always gets a fresh activator).
//
// This is P5's monotonicity estimator: CalcCNFSize never decreases when
// a cube is appended to a cover, since Or only ever adds children and
// every branch below only adds non-negative contributions.
func CalcCNFSize(expr Expr) (Size, int, error) {
	switch expr.Kind {
	case ExprConst1, ExprLit:
		return Size{}, 1, nil
	case ExprConst0:
		return Size{}, 0, ErrConstantZero
	case ExprAnd:
		var total Size
		arity := 0
		for _, c := range expr.Children {
			s, a, err := CalcCNFSize(c)
			if err != nil {
				return Size{}, 0, err
			}
			total = total.Add(s)
			arity += a
		}
		return total, arity, nil
	case ExprOr:
		var total Size
		n := len(expr.Children)
		for _, c := range expr.Children {
			s, a, err := CalcCNFSize(c)
			if err != nil {
				return Size{}, 0, err
			}
			total = total.Add(s)
			if a > 1 {
				total = total.Add(Size{Clauses: a, Literals: 2 * a})
			}
		}
		total = total.Add(Size{Clauses: 1, Literals: n + 1})
		return total, 1, nil
	default:
		return Size{}, 0, ErrConstantZero
	}
}
