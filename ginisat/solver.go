package ginisat

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/inter"
	"github.com/irifrance/gini/z"

	"github.com/atpg-sat/satcore/satif"
)

// Solver wraps a gini.Gini instance to satisfy satif.Solver. A positive
// satif.Lit is the direct cast of the z.Lit gini handed out for that
// variable; negation differs between the two representations (satif
// negates arithmetically, z.Lit flips its low bit), so toZLit rebuilds
// the gini literal from the magnitude and applies z.Lit.Not for the
// negative case.
type Solver struct {
	g     inter.S
	model *model

	clauses  int
	literals int
}

// New returns a Solver backed by a fresh gini instance.
func New() *Solver {
	return &Solver{g: gini.New()}
}

func toZLit(l satif.Lit) z.Lit {
	if l < 0 {
		return z.Lit(-l).Not()
	}
	return z.Lit(l)
}

func toSatLit(l z.Lit) satif.Lit { return satif.Lit(l) }

// NewVariable allocates a fresh gini variable and returns its positive
// literal. gini does not distinguish decision from auxiliary variables
// through its public API, so the decision hint is accepted for interface
// conformance and otherwise unused.
func (s *Solver) NewVariable(decision bool) satif.Lit {
	_ = decision
	return toSatLit(s.g.Lit())
}

// AddClause asserts the disjunction of lits as a single gini clause.
func (s *Solver) AddClause(lits ...satif.Lit) {
	for _, l := range lits {
		s.g.Add(toZLit(l))
	}
	s.g.Add(z.LitNull)
	s.clauses++
	s.literals += len(lits)
}

// AddAndGate asserts out ↔ AND(inputs...) via the standard Tseitin
// clauses: (¬out ∨ i₁) ∧ … ∧ (¬out ∨ iₙ) ∧ (out ∨ ¬i₁ ∨ … ∨ ¬iₙ).
func (s *Solver) AddAndGate(out satif.Lit, inputs ...satif.Lit) {
	for _, in := range inputs {
		s.AddClause(out.Not(), in)
	}
	big := make([]satif.Lit, 0, len(inputs)+1)
	big = append(big, out)
	for _, in := range inputs {
		big = append(big, in.Not())
	}
	s.AddClause(big...)
}

// AddOrGate asserts out ↔ OR(inputs...), the De Morgan dual of AddAndGate:
// (out ∨ ¬i₁) ∧ … ∧ (out ∨ ¬iₙ) ∧ (¬out ∨ i₁ ∨ … ∨ iₙ).
func (s *Solver) AddOrGate(out satif.Lit, inputs ...satif.Lit) {
	for _, in := range inputs {
		s.AddClause(out, in.Not())
	}
	big := make([]satif.Lit, 0, len(inputs)+1)
	big = append(big, out.Not())
	big = append(big, inputs...)
	s.AddClause(big...)
}

// AddNorGate asserts out ↔ NOR(inputs...) by encoding out ↔ ¬OR(inputs...).
func (s *Solver) AddNorGate(out satif.Lit, inputs ...satif.Lit) {
	s.AddOrGate(out.Not(), inputs...)
}

// AddXorGate asserts out ↔ XOR(inputs...). For two inputs this is the
// familiar 4-clause XOR encoding; for more than two, it is built as a
// left-folded parity chain of binary XOR gates over fresh intermediate
// variables, each one Tseitin-encoded the same way.
func (s *Solver) AddXorGate(out satif.Lit, inputs ...satif.Lit) {
	switch len(inputs) {
	case 0:
		// XOR of zero inputs is the constant false.
		s.AddClause(out.Not())
		return
	case 1:
		// XOR of one input is the identity.
		s.AddClause(out.Not(), inputs[0])
		s.AddClause(out, inputs[0].Not())
		return
	}
	acc := inputs[0]
	for i := 1; i < len(inputs)-1; i++ {
		mid := s.NewVariable(false)
		s.addXor2(mid, acc, inputs[i])
		acc = mid
	}
	s.addXor2(out, acc, inputs[len(inputs)-1])
}

// addXor2 asserts out ↔ (a XOR b) via the four canonical clauses.
func (s *Solver) addXor2(out, a, b satif.Lit) {
	s.AddClause(out.Not(), a.Not(), b.Not())
	s.AddClause(out.Not(), a, b)
	s.AddClause(out, a.Not(), b)
	s.AddClause(out, a, b.Not())
}

// Solve runs gini's Solve under the given unit assumptions.
func (s *Solver) Solve(assumptions []satif.Lit) satif.SolveResult {
	zs := make([]z.Lit, len(assumptions))
	for i, l := range assumptions {
		zs[i] = toZLit(l)
	}
	s.g.Assume(zs...)
	switch s.g.Solve() {
	case 1:
		s.model = &model{g: s.g}
		return satif.Sat
	case -1:
		s.model = nil
		return satif.Unsat
	default:
		s.model = nil
		return satif.Unknown
	}
}

// Model returns the model from the most recent Sat Solve call.
func (s *Solver) Model() satif.Model { return s.model }

// CnfSize returns the number of clauses and literals added through this
// adapter. gini's inter.S interface does not expose a CNF-size
// accessor, so the counts are tracked locally by AddClause (every
// clause-producing gate helper in this file routes through it).
func (s *Solver) CnfSize() (clauses, literals int) {
	return s.clauses, s.literals
}

// GetStats returns a zero-value Stats. inter.S, the interface gini
// exposes publicly, does not surface the internal restart/conflict
// counters that xo.S tracks (those are only readable via the
// unexported xo.S.ReadStats, reachable from code inside the gini
// module itself); without that accessor this adapter has nothing
// real to report.
func (s *Solver) GetStats() satif.Stats {
	return satif.Stats{}
}

type model struct {
	g inter.S
}

func (m *model) Value(l satif.Lit) satif.TriState {
	if m.g.Value(toZLit(l)) {
		return satif.True
	}
	return satif.False
}
