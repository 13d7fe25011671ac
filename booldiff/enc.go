package booldiff

import (
	"sort"

	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// kind is the structenc.RootKey discriminator this package registers
// under, letting a BoolDiffEnc coexist at the same root as any future
// sub-encoder kind.
const kind = "booldiff"

// BoolDiffEnc is the Boolean-difference sub-encoder. Construct one
// with New and attach it to a StructEngine via AddSubenc; its CNF is
// materialized lazily, the next time the engine's good-machine
// traversal reaches Root.
type BoolDiffEnc struct {
	root   network.NodeID
	engine *structenc.StructEngine
	fault  *network.Fault

	built   bool
	cone    []network.NodeID // ascending-id (topological) order, root first
	coneSet map[network.NodeID]bool

	fvar    map[network.NodeID]satif.Lit
	dvar    map[network.NodeID]satif.Lit
	outputs []network.NodeID
	pvar    satif.Lit

	ownClauses, ownLiterals int
}

// New returns a BoolDiffEnc rooted at root, not yet attached to any
// engine. Root's fault-frame literal follows the generic bit-flip
// (fvar(root) = ¬gvar(root)), matching CondGen's fault-agnostic
// per-FFR usage.
func New(root network.NodeID) *BoolDiffEnc {
	return &BoolDiffEnc{root: root}
}

// NewForFault returns a BoolDiffEnc rooted at fault's own target node,
// whose root fault-frame literal follows fault's exact excitation
// relation (via StructEngine.EmitFaultyGateCNF) instead of the generic
// bit-flip New uses: a caller verifying one specific fault's detection
// gets the gate-accurate faulty relation at the fault site itself, with the
// ordinary fvar/dvar/pvar cascade carrying that value forward to
// every reachable output exactly as it does for the fault-agnostic case.
func NewForFault(fault *network.Fault) *BoolDiffEnc {
	return &BoolDiffEnc{root: fault.TargetNode(), fault: fault}
}

// RootNode returns the node this encoder is rooted at.
func (b *BoolDiffEnc) RootNode() network.NodeID { return b.root }

// Root implements structenc.SubEncoder.
func (b *BoolDiffEnc) Root() structenc.RootKey {
	return structenc.RootKey{Node: b.root, Kind: kind}
}

// MakeCNF implements structenc.SubEncoder: it discovers the forward
// fanout cone from b.root, allocates a fault-frame literal for every
// node in it, asserts the injected flip, links each cone node's fvar to
// its faulty-or-good fanin literals, and builds the per-output
// difference literals and the top-level propagation variable.
func (b *BoolDiffEnc) MakeCNF(e *structenc.StructEngine) {
	if b.built {
		return
	}
	b.built = true
	b.engine = e

	net := e.Network()
	b.discoverCone(net)

	solver := e.Solver()
	b.fvar = make(map[network.NodeID]satif.Lit, len(b.cone))
	b.dvar = make(map[network.NodeID]satif.Lit)

	for _, n := range b.cone {
		node := net.Node(n)
		e.MakeCNFForNode(n, network.FrameCur)
		gLit, _ := e.GVarMap().Lit(n)

		// litFor may recurse into e.MakeCNFForNode for out-of-cone
		// fanins (good-machine CNF); resolve those dependencies before
		// the own-CNF snapshot below so they never get misattributed.
		var ins []satif.Lit
		var ppoIn satif.Lit
		switch {
		case n == b.root:
			if b.fault != nil && node.Kind() == network.KindGate {
				// A fault-specific root re-derives the gate relation over
				// its good-machine fanins (minus the faulted pin), so the
				// fanin literals are needed up front just like any other
				// cone gate's.
				ins = make([]satif.Lit, node.FaninNum())
				for i, fi := range node.Fanin() {
					ins[i] = b.litFor(e, fi)
				}
			}
		case node.Kind() == network.KindPPO:
			ppoIn = b.litFor(e, node.FaninAt(0))
		default:
			ins = make([]satif.Lit, node.FaninNum())
			for i, fi := range node.Fanin() {
				ins[i] = b.litFor(e, fi)
			}
		}

		baseC, baseL := solver.CnfSize()

		switch {
		case n == b.root:
			fl := solver.NewVariable(false)
			if b.fault != nil {
				e.EmitFaultyGateCNF(fl, b.fault, node, ins)
			} else {
				solver.AddClause(fl.Not(), gLit.Not())
				solver.AddClause(fl, gLit)
			}
			b.fvar[n] = fl
		case node.Kind() == network.KindPPO:
			fl := solver.NewVariable(false)
			solver.AddClause(fl.Not(), ppoIn)
			solver.AddClause(fl, ppoIn.Not())
			b.fvar[n] = fl
		default:
			fl := solver.NewVariable(false)
			e.EmitGateCNF(fl, node.Primitive(), ins)
			b.fvar[n] = fl
		}

		if node.FanoutNum() == 0 {
			b.outputs = append(b.outputs, n)
			dl := solver.NewVariable(false)
			solver.AddXorGate(dl, gLit, b.fvar[n])
			b.dvar[n] = dl
		}

		afterC, afterL := solver.CnfSize()
		b.ownClauses += afterC - baseC
		b.ownLiterals += afterL - baseL
	}

	baseC, baseL := solver.CnfSize()
	b.pvar = solver.NewVariable(true)
	dls := make([]satif.Lit, len(b.outputs))
	for i, o := range b.outputs {
		dls[i] = b.dvar[o]
	}
	solver.AddOrGate(b.pvar, dls...)
	afterC, afterL := solver.CnfSize()
	b.ownClauses += afterC - baseC
	b.ownLiterals += afterL - baseL
}

// litFor returns fi's literal for use as a fanin of a cone node: its
// fault-frame literal if fi is itself in the cone, else its good-machine
// literal (ensuring fi's good-machine CNF exists first).
func (b *BoolDiffEnc) litFor(e *structenc.StructEngine, fi network.NodeID) satif.Lit {
	if b.coneSet[fi] {
		return b.fvar[fi]
	}
	e.MakeCNFForNode(fi, network.FrameCur)
	l, _ := e.GVarMap().Lit(fi)
	return l
}

// discoverCone walks forward from b.root along fanout edges, collecting
// every reachable node. Node ids are assigned densely in fanin-before-
// fanout order by network.Builder, so sorting the discovered set by id
// yields a valid topological order with b.root first.
func (b *BoolDiffEnc) discoverCone(net *network.Network) {
	b.coneSet = map[network.NodeID]bool{b.root: true}
	queue := []network.NodeID{b.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, fo := range net.Node(n).Fanout() {
			if !b.coneSet[fo] {
				b.coneSet[fo] = true
				queue = append(queue, fo)
			}
		}
	}
	b.cone = make([]network.NodeID, 0, len(b.coneSet))
	for n := range b.coneSet {
		b.cone = append(b.cone, n)
	}
	sort.Slice(b.cone, func(i, j int) bool { return b.cone[i] < b.cone[j] })
}

// PropVar returns the global propagation literal: true iff the injected
// flip at Root reaches some output in the cone.
func (b *BoolDiffEnc) PropVar() satif.Lit { return b.pvar }

// OutputPropVar returns the per-output propagation literal for the
// outputIndex'th output in OutputList order.
func (b *BoolDiffEnc) OutputPropVar(outputIndex int) satif.Lit {
	return b.dvar[b.outputs[outputIndex]]
}

// OutputList returns the cone's reachable outputs, in ascending node-id
// order.
func (b *BoolDiffEnc) OutputList() []network.NodeID { return b.outputs }

// Nodes returns every node in the fault cone, in ascending node-id
// order.
func (b *BoolDiffEnc) Nodes() []network.NodeID { return b.cone }

// InCone reports whether n lies in the fault cone.
func (b *BoolDiffEnc) InCone(n network.NodeID) bool { return b.coneSet[n] }

// Network returns the network the cone was discovered over.
func (b *BoolDiffEnc) Network() *network.Network { return b.engine.Network() }

// GoodLit returns n's good-machine (frame-1) literal.
func (b *BoolDiffEnc) GoodLit(n network.NodeID) satif.Lit {
	l, _ := b.engine.GVarMap().Lit(n)
	return l
}

// FaultLit returns n's fault-frame literal. n must be in the cone.
func (b *BoolDiffEnc) FaultLit(n network.NodeID) satif.Lit { return b.fvar[n] }

// CNFStats returns the clause/literal count this encoder directly
// contributed to its solver (fvar/dvar/pvar construction), excluding any
// good-machine CNF its cone discovery incidentally triggered — that
// belongs to the structural-encoding layer, not the boolean-difference
// one.
func (b *BoolDiffEnc) CNFStats() (clauses, literals int) { return b.ownClauses, b.ownLiterals }
