package structenc

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// EmitFaultyGateCNF asserts out's relation to node's faulty output
// under f: a stem
// fault pins out to its stuck constant unconditionally; a branch fault
// re-derives node's ordinary gate relation over every fanin except the
// faulted pin, short-circuiting to a constant wherever the faulted pin's
// stuck value alone determines the gate's output regardless of the
// other fanins.
//
// fanins must be node's good-machine fanin literals, in fanin order,
// with length node.FaninNum() — the same literals a good-machine
// EmitGateCNF call for node would use. A fault whose Variant().Kind is
// VariantGateExhaustive is not modeled here; stem and branch are the
// only two variants a real fanout-free region ever produces.
func (e *StructEngine) EmitFaultyGateCNF(out satif.Lit, f *network.Fault, node *network.Node, fanins []satif.Lit) {
	v := f.Variant()

	if v.Kind != network.VariantBranch {
		e.pinConstant(out, v.StuckValue)
		return
	}

	if node.Kind() == network.KindPPO {
		// A PPO's sole fanin is the faulted pin itself; removing it leaves
		// nothing to re-derive, same as a single-input gate.
		e.pinConstant(out, v.StuckValue)
		return
	}

	others := make([]satif.Lit, 0, len(fanins)-1)
	for i, l := range fanins {
		if i == v.InputPos {
			continue
		}
		others = append(others, l)
	}

	prim := node.Primitive()
	stuck := v.StuckValue

	switch prim {
	case network.PrimBUF, network.PrimNOT, network.PrimXOR, network.PrimXNOR:
		// Single- and two-input primitives: removing the faulted pin
		// leaves at most one fanin, so the relation collapses to a
		// constant (BUF/NOT with no remaining fanin) or to a BUF/NOT
		// relation over the one surviving XOR/XNOR fanin.
		e.emitFaultyNarrowGate(out, prim, stuck, others)
	case network.PrimAND:
		if !stuck {
			// A 0 on any AND input forces the output to 0 regardless of
			// the rest.
			e.solver.AddClause(out.Not())
			return
		}
		e.solver.AddAndGate(out, others...)
	case network.PrimNAND:
		if !stuck {
			e.solver.AddClause(out)
			return
		}
		e.solver.AddAndGate(out.Not(), others...)
	case network.PrimOR:
		if stuck {
			e.solver.AddClause(out)
			return
		}
		e.solver.AddOrGate(out, others...)
	case network.PrimNOR:
		if stuck {
			e.solver.AddClause(out.Not())
			return
		}
		e.solver.AddNorGate(out, others...)
	}
}

// emitFaultyNarrowGate handles the branch-fault case for the primitives
// whose ordinary arity is at most 2 (BUF, NOT, XOR, XNOR): once the
// faulted pin is removed, at most one fanin survives, so the relation is
// either a bare constant (BUF/NOT) or a BUF/NOT of the surviving fanin
// (XOR/XNOR), per the stuck value and the primitive's own sense.
func (e *StructEngine) emitFaultyNarrowGate(out satif.Lit, prim network.Primitive, stuck bool, others []satif.Lit) {
	switch prim {
	case network.PrimBUF:
		e.pinConstant(out, stuck)
	case network.PrimNOT:
		e.pinConstant(out, !stuck)
	case network.PrimXOR:
		// out = in[1-pos]  if stuck == false (faulted pin contributes 0)
		// out = NOT(in[1-pos]) if stuck == true
		if stuck {
			e.solver.AddClause(out.Not(), others[0].Not())
			e.solver.AddClause(out, others[0])
		} else {
			e.solver.AddClause(out.Not(), others[0])
			e.solver.AddClause(out, others[0].Not())
		}
	case network.PrimXNOR:
		if stuck {
			e.solver.AddClause(out.Not(), others[0])
			e.solver.AddClause(out, others[0].Not())
		} else {
			e.solver.AddClause(out.Not(), others[0].Not())
			e.solver.AddClause(out, others[0])
		}
	}
}

// pinConstant asserts the unit clause fixing out to val.
func (e *StructEngine) pinConstant(out satif.Lit, val bool) {
	if val {
		e.solver.AddClause(out)
	} else {
		e.solver.AddClause(out.Not())
	}
}
