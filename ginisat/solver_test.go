package ginisat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atpg-sat/satcore/ginisat"
	"github.com/atpg-sat/satcore/satif"
)

func TestSolver_UnitClausesAndNegation(t *testing.T) {
	s := ginisat.New()
	a := s.NewVariable(true)
	b := s.NewVariable(true)

	s.AddClause(a)
	s.AddClause(b.Not())

	res := s.Solve(nil)
	require.Equal(t, satif.Sat, res)
	m := s.Model()
	assert.Equal(t, satif.True, m.Value(a))
	assert.Equal(t, satif.False, m.Value(b))
	assert.Equal(t, satif.True, m.Value(b.Not()))

	// Assuming the complement of an asserted unit is Unsat.
	assert.Equal(t, satif.Unsat, s.Solve([]satif.Lit{a.Not()}))
}

func TestSolver_AndGate(t *testing.T) {
	s := ginisat.New()
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	out := s.NewVariable(false)
	s.AddAndGate(out, a, b)

	require.Equal(t, satif.Sat, s.Solve([]satif.Lit{out}))
	m := s.Model()
	assert.Equal(t, satif.True, m.Value(a))
	assert.Equal(t, satif.True, m.Value(b))

	require.Equal(t, satif.Sat, s.Solve([]satif.Lit{out.Not(), a}))
	assert.Equal(t, satif.False, s.Model().Value(b))

	assert.Equal(t, satif.Unsat, s.Solve([]satif.Lit{out.Not(), a, b}))
}

func TestSolver_XorGateChain(t *testing.T) {
	s := ginisat.New()
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	c := s.NewVariable(true)
	out := s.NewVariable(false)
	s.AddXorGate(out, a, b, c)

	// Odd parity satisfies out; even parity refutes it.
	require.Equal(t, satif.Sat, s.Solve([]satif.Lit{out, a, b.Not(), c.Not()}))
	assert.Equal(t, satif.Unsat, s.Solve([]satif.Lit{out, a, b, c.Not()}))
	assert.Equal(t, satif.Sat, s.Solve([]satif.Lit{out, a, b, c}))
	assert.Equal(t, satif.Unsat, s.Solve([]satif.Lit{out.Not(), a, b, c}))
}

func TestSolver_CnfSizeCounts(t *testing.T) {
	s := ginisat.New()
	a := s.NewVariable(true)
	b := s.NewVariable(true)

	s.AddClause(a, b)
	c1, l1 := s.CnfSize()
	assert.Equal(t, 1, c1)
	assert.Equal(t, 2, l1)

	out := s.NewVariable(false)
	s.AddAndGate(out, a, b)
	c2, l2 := s.CnfSize()
	// AND(2) is 2 binary clauses plus 1 ternary clause.
	assert.Equal(t, 4, c2)
	assert.Equal(t, 9, l2)
}
