package structenc

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// varMap is the bijection {(node, time-frame) → SAT literal}. It also
// tracks, per (node, frame), whether that node's defining
// clauses have already been emitted ("current-CNF-done" / "previous-
// CNF-done"), so StructEngine's traversal can stop as
// soon as it reaches already-materialized territory.
type varMap struct {
	lits [2]map[network.NodeID]satif.Lit
	done [2]map[network.NodeID]bool
}

func newVarMap() *varMap {
	return &varMap{
		lits: [2]map[network.NodeID]satif.Lit{
			network.FramePrev: make(map[network.NodeID]satif.Lit),
			network.FrameCur:  make(map[network.NodeID]satif.Lit),
		},
		done: [2]map[network.NodeID]bool{
			network.FramePrev: make(map[network.NodeID]bool),
			network.FrameCur:  make(map[network.NodeID]bool),
		},
	}
}

// lit returns the literal assigned to (n, f), allocating a fresh one on
// first request.
func (m *varMap) lit(solver satif.Solver, n network.NodeID, f network.Frame) satif.Lit {
	if l, ok := m.lits[f][n]; ok {
		return l
	}
	l := solver.NewVariable(true)
	m.lits[f][n] = l
	return l
}

// litIfPresent returns the literal assigned to (n, f) without allocating
// one.
func (m *varMap) litIfPresent(n network.NodeID, f network.Frame) (satif.Lit, bool) {
	l, ok := m.lits[f][n]
	return l, ok
}

func (m *varMap) isDone(n network.NodeID, f network.Frame) bool {
	return m.done[f][n]
}

func (m *varMap) markDone(n network.NodeID, f network.Frame) {
	m.done[f][n] = true
}

// FrameView is a read-only, single-frame projection of a varMap, handed
// out by StructEngine.GVarMap/HVarMap.
type FrameView struct {
	vm    *varMap
	frame network.Frame
}

// Lit returns the literal assigned to n at this view's frame, if one has
// been allocated.
func (v *FrameView) Lit(n network.NodeID) (satif.Lit, bool) {
	return v.vm.litIfPresent(n, v.frame)
}

// Frame returns the time-frame this view projects.
func (v *FrameView) Frame() network.Frame { return v.frame }
