package condlower

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// leafKey identifies one AIG input variable: a (node, frame) pair. Sign
// is never part of the key — AIG literals carry their own negation bit,
// for structural hashing of AND nodes.
type leafKey struct {
	node  network.NodeID
	frame network.Frame
}

// aigMgr is a structurally-hashed AND-inverter graph: every variable id
// is either a leaf input or a 2-input AND of two (possibly negated)
// earlier lits. Lits follow the conventional AIGER encoding: lit =
// 2*id+sign, id 0 reserved for the constant (lit 0 = false, lit 1 =
// true), so aigLit.Not() is a pure XOR-with-1.
type aigMgr struct {
	kind      []bool // per id (1-based via index+1): false=leaf, true=and
	fanin0    []int
	fanin1    []int
	andCache  map[[2]int]int
	leafCache map[leafKey]int
}

func newAigMgr() *aigMgr {
	return &aigMgr{andCache: make(map[[2]int]int), leafCache: make(map[leafKey]int)}
}

func (m *aigMgr) notLit(l int) int { return l ^ 1 }

func (m *aigMgr) leafLit(key leafKey) int {
	if id, ok := m.leafCache[key]; ok {
		return id * 2
	}
	m.kind = append(m.kind, false)
	m.fanin0 = append(m.fanin0, 0)
	m.fanin1 = append(m.fanin1, 0)
	id := len(m.kind)
	m.leafCache[key] = id
	return id * 2
}

// andLit returns the AIG literal for a ∧ b, structurally hashing so two
// requests for the same (unordered, sign-sensitive) pair share one node.
func (m *aigMgr) andLit(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a == 1 {
		return b
	}
	if b == 1 {
		return a
	}
	if a == b {
		return a
	}
	if a == m.notLit(b) {
		return 0
	}
	key := [2]int{a, b}
	if a > b {
		key = [2]int{b, a}
	}
	if id, ok := m.andCache[key]; ok {
		return id * 2
	}
	m.kind = append(m.kind, true)
	m.fanin0 = append(m.fanin0, key[0])
	m.fanin1 = append(m.fanin1, key[1])
	id := len(m.kind)
	m.andCache[key] = id
	return id * 2
}

// orLit implements OR via the De Morgan identity OR(a,b) = ¬AND(¬a,¬b).
func (m *aigMgr) orLit(a, b int) int { return m.notLit(m.andLit(m.notLit(a), m.notLit(b))) }

// xorLit implements XOR via the identity XOR(a,b) = OR(AND(a,¬b),
// AND(¬a,b)). Unused by any Expr built in this package today
// (cover Exprs are pure AND/OR sum-of-products, never XOR), kept so an
// Expr extension gains the identity for free rather than needing a
// second AIG construction path.
func (m *aigMgr) xorLit(a, b int) int {
	return m.orLit(m.andLit(a, m.notLit(b)), m.andLit(m.notLit(a), b))
}

// andAll/orAll fold a lit slice into a balanced binary tree of 2-input
// gates.
func (m *aigMgr) andAll(lits []int) int { return m.foldBalanced(lits, m.andLit, 1) }
func (m *aigMgr) orAll(lits []int) int  { return m.foldBalanced(lits, m.orLit, 0) }

func (m *aigMgr) foldBalanced(lits []int, op func(int, int) int, identity int) int {
	if len(lits) == 0 {
		return identity
	}
	for len(lits) > 1 {
		next := make([]int, 0, (len(lits)+1)/2)
		for i := 0; i+1 < len(lits); i += 2 {
			next = append(next, op(lits[i], lits[i+1]))
		}
		if len(lits)%2 == 1 {
			next = append(next, lits[len(lits)-1])
		}
		lits = next
	}
	return lits[0]
}

// buildAig converts expr into mgr's AIG and returns the lit representing
// its root.
func buildAig(mgr *aigMgr, expr Expr) (int, error) {
	switch expr.Kind {
	case ExprConst1:
		return 1, nil
	case ExprConst0:
		return 0, ErrConstantZero
	case ExprLit:
		l := mgr.leafLit(leafKey{node: expr.Lit.Node, frame: expr.Lit.Frame})
		if !expr.Lit.Value {
			l = mgr.notLit(l)
		}
		return l, nil
	case ExprAnd:
		lits, err := buildAigChildren(mgr, expr.Children)
		if err != nil {
			return 0, err
		}
		return mgr.andAll(lits), nil
	case ExprOr:
		lits, err := buildAigChildren(mgr, expr.Children)
		if err != nil {
			return 0, err
		}
		return mgr.orAll(lits), nil
	default:
		return 0, ErrConstantZero
	}
}

func buildAigChildren(mgr *aigMgr, children []Expr) ([]int, error) {
	lits := make([]int, len(children))
	for i, c := range children {
		l, err := buildAig(mgr, c)
		if err != nil {
			return nil, err
		}
		lits[i] = l
	}
	return lits, nil
}

// encodeAig Tseitin-encodes every AND node of mgr into engine's solver
// (three clauses per AND node) and returns rootLit's literal.
func encodeAig(engine *structenc.StructEngine, mgr *aigMgr, rootLit int) (satif.Lit, Size, error) {
	solver := engine.Solver()
	var size Size

	trueBaseC, trueBaseL := solver.CnfSize()
	trueLit := solver.NewVariable(false)
	solver.AddClause(trueLit)
	taC, taL := solver.CnfSize()
	size = size.Add(Size{Clauses: taC - trueBaseC, Literals: taL - trueBaseL})

	nodeSat := make([]satif.Lit, len(mgr.kind)+1) // index 0 unused; ids are 1-based
	leafOf := make(map[int]leafKey, len(mgr.leafCache))
	for key, id := range mgr.leafCache {
		leafOf[id] = key
	}

	resolve := func(l int) satif.Lit {
		id := l / 2
		neg := l%2 == 1
		var base satif.Lit
		if id == 0 {
			base = trueLit.Not() // lit 0 is constant false, lit 1 constant true
		} else {
			base = nodeSat[id]
		}
		if neg {
			return base.Not()
		}
		return base
	}

	for id := 1; id <= len(mgr.kind); id++ {
		if !mgr.kind[id-1] {
			key := leafOf[id]
			nodeSat[id] = engine.ConvToLiteral(network.Assign{Node: key.node, Frame: key.frame, Value: true})
			continue
		}
		l0 := resolve(mgr.fanin0[id-1])
		l1 := resolve(mgr.fanin1[id-1])
		baseC, baseL := solver.CnfSize()
		out := solver.NewVariable(false)
		solver.AddAndGate(out, l0, l1)
		afterC, afterL := solver.CnfSize()
		size = size.Add(Size{Clauses: afterC - baseC, Literals: afterL - baseL})
		nodeSat[id] = out
	}

	return resolve(rootLit), size, nil
}

// lowerAig implements the aig method: convert cover into a shared AIG
// (structural hashing of AND nodes, OR via De Morgan, balanced trees),
// then Tseitin-encode it. rewrite is accepted for API symmetry with the
// option map's "rewrite" flag; this package does not implement the
// optional local-rewriting pass described as "further sharing" — the
// structural hashing already performed during construction is the
// sharing that matters for the covers this domain produces (flat or
// lightly-factored sum-of-products), and local AIG rewriting (balance/
// tree-cuts) would need a much richer rewrite-rule library than
// anything in the example pack ships, so it is left unimplemented with
// this note rather than faked.
func lowerAig(engine *structenc.StructEngine, cover []network.AssignList, rewrite bool) (satif.Lit, Size, error) {
	expr := BuildExpr(nil, cover)
	mgr := newAigMgr()
	root, err := buildAig(mgr, expr)
	if err != nil {
		return 0, Size{}, err
	}
	return encodeAig(engine, mgr, root)
}
