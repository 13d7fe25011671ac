package structenc

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// StructEngine owns one SAT solver and one VarMap, and incrementally
// materializes good-machine CNF for the transitive-fanin-closure of any
// requested node.
type StructEngine struct {
	solver  satif.Solver
	net     *network.Network
	vm      *varMap
	subencs map[RootKey]SubEncoder
	byNode  map[network.NodeID][]SubEncoder
	logger  zerolog.Logger

	// twoFrame enables the DFF frame-crossing: a DFF output's
	// frame-1 literal is tied to its paired DFF input's frame-0 cone.
	// Off (the stuck-at default), DFF outputs are free variables, the
	// full-scan assumption.
	twoFrame bool
}

// New returns a StructEngine over net, using solver for every clause it
// emits.
func New(net *network.Network, solver satif.Solver) *StructEngine {
	return &StructEngine{
		solver:  solver,
		net:     net,
		vm:      newVarMap(),
		subencs: make(map[RootKey]SubEncoder),
		byNode:  make(map[network.NodeID][]SubEncoder),
		logger:  zerolog.Nop(),
	}
}

// SetLogger routes solve-level debug events to logger; the default is a
// no-op logger.
func (e *StructEngine) SetLogger(logger zerolog.Logger) { e.logger = logger }

// SetTwoFrame switches the engine into two-frame (transition-delay)
// mode: the previous-frame cone of a DFF's input is materialized
// transitively whenever the DFF's output is requested at frame 1. Must
// be set before the first CNF request touching a DFF output; under the
// default single-frame (stuck-at) mode DFF outputs stay free variables.
func (e *StructEngine) SetTwoFrame(v bool) { e.twoFrame = v }

// Solver returns the underlying solver.
func (e *StructEngine) Solver() satif.Solver { return e.solver }

// Network returns the network this engine reasons over.
func (e *StructEngine) Network() *network.Network { return e.net }

// GVarMap returns a view of the current-frame (frame 1) variable map.
// "g" is the conventional name for the good-machine map.
func (e *StructEngine) GVarMap() *FrameView { return &FrameView{vm: e.vm, frame: network.FrameCur} }

// HVarMap returns a view of the previous-frame (frame 0, "history")
// variable map, meaningful only under the transition-delay model.
func (e *StructEngine) HVarMap() *FrameView { return &FrameView{vm: e.vm, frame: network.FramePrev} }

// AddSubenc attaches sub to this engine. Ownership transfers: the engine
// calls sub.MakeCNF each time MakeCNF materializes sub's root at a time
// frame, so at most once per frame.
func (e *StructEngine) AddSubenc(sub SubEncoder) {
	key := sub.Root()
	e.subencs[key] = sub
	e.byNode[key.Node] = append(e.byNode[key.Node], sub)
}

// subencsAt returns every sub-encoder registered at node n, regardless of
// kind, in attachment order.
func (e *StructEngine) subencsAt(n network.NodeID) []SubEncoder {
	return e.byNode[n]
}

// SubencAt returns the sub-encoder registered at key, if any.
func (e *StructEngine) SubencAt(key RootKey) (SubEncoder, bool) {
	s, ok := e.subencs[key]
	return s, ok
}

// ExtractSufficientCondition recovers, from model, one sufficient
// AssignList per sensitized output of the extraction-capable
// sub-encoder attached at root. It returns ErrUnknownSubEncoder if no
// such sub-encoder is attached.
func (e *StructEngine) ExtractSufficientCondition(root network.NodeID, model satif.Model) ([]network.AssignList, error) {
	for _, sub := range e.subencsAt(root) {
		if x, ok := sub.(CondExtractor); ok {
			return x.ExtractSufficientConditionAll(model)
		}
	}
	return nil, ErrUnknownSubEncoder
}

// ConvToLiteral returns the literal for a.Node at a.Frame, polarity-
// adjusted by a.Value, lazily materializing CNF for that node's TFI
// closure at that frame.
func (e *StructEngine) ConvToLiteral(a network.Assign) satif.Lit {
	e.MakeCNFForNode(a.Node, a.Frame)
	l := e.vm.lit(e.solver, a.Node, a.Frame)
	if a.Value {
		return l
	}
	return l.Not()
}

// MakeCNF ensures CNF is materialized for the TFI closures of
// currentRoots at frame 1 and prevRoots at frame 0. Idempotent: nodes
// already marked done are skipped.
func (e *StructEngine) MakeCNF(currentRoots, prevRoots []network.NodeID) {
	for _, r := range currentRoots {
		e.MakeCNFForNode(r, network.FrameCur)
	}
	for _, r := range prevRoots {
		e.MakeCNFForNode(r, network.FramePrev)
	}
}

// MakeCNFForNode materializes CNF for n's TFI closure at frame f,
// reverse-topologically (fanins before the node that consumes them),
// so every fanin's literal exists before the clauses that consume it.
// Already-materialized nodes short-circuit.
func (e *StructEngine) MakeCNFForNode(n network.NodeID, f network.Frame) {
	if e.vm.isDone(n, f) {
		return
	}
	node := e.net.Node(n)

	if node.Kind() == network.KindPPI {
		if f == network.FrameCur && e.twoFrame {
			if d, ok := e.net.DFFInput(n); ok {
				// q's frame-1 value is whatever its paired DFF input
				// carried at frame 0.
				e.MakeCNFForNode(d, network.FramePrev)
				qLit := e.vm.lit(e.solver, n, network.FrameCur)
				dLit := e.vm.lit(e.solver, d, network.FramePrev)
				e.solver.AddClause(qLit.Not(), dLit)
				e.solver.AddClause(qLit, dLit.Not())
			} else {
				e.vm.lit(e.solver, n, f)
			}
		} else {
			// Free variable: a true primary input at either frame, a
			// frame-0 DFF output (no further backward history; one frame
			// is all transition-delay reasoning asks for), or any DFF
			// output under single-frame mode (the full-scan assumption
			// makes state directly controllable).
			e.vm.lit(e.solver, n, f)
		}
		e.vm.markDone(n, f)
		for _, sub := range e.subencsAt(n) {
			sub.MakeCNF(e)
		}
		return
	}

	for _, fi := range node.Fanin() {
		e.MakeCNFForNode(fi, f)
	}

	// A sibling fanin's sub-encoder dispatch (above) may have recursed
	// forward through the fanout graph and already materialized n as
	// part of its own cone discovery (e.g. a PPO beyond a BoolDiffEnc's
	// root) before this call resumes. Re-check rather than re-emit.
	if e.vm.isDone(n, f) {
		return
	}

	out := e.vm.lit(e.solver, n, f)

	if node.Kind() == network.KindPPO {
		in := e.vm.lit(e.solver, node.FaninAt(0), f)
		e.solver.AddClause(out.Not(), in)
		e.solver.AddClause(out, in.Not())
		e.vm.markDone(n, f)
		for _, sub := range e.subencsAt(n) {
			sub.MakeCNF(e)
		}
		return
	}

	ins := make([]satif.Lit, node.FaninNum())
	for i, fi := range node.Fanin() {
		ins[i] = e.vm.lit(e.solver, fi, f)
	}
	e.emitGateCNF(out, node.Primitive(), ins)
	e.vm.markDone(n, f)

	for _, sub := range e.subencsAt(n) {
		sub.MakeCNF(e)
	}
}

// EmitGateCNF adds the canonical Tseitin clauses for out ↔ prim(ins...).
// Exported so sub-encoders (BoolDiffEnc, the faulty-gate encoder) can
// reuse the same per-primitive encoding this engine uses for the
// good machine.
func (e *StructEngine) EmitGateCNF(out satif.Lit, prim network.Primitive, ins []satif.Lit) {
	e.emitGateCNF(out, prim, ins)
}

func (e *StructEngine) emitGateCNF(out satif.Lit, prim network.Primitive, ins []satif.Lit) {
	switch prim {
	case network.PrimBUF:
		e.solver.AddClause(out.Not(), ins[0])
		e.solver.AddClause(out, ins[0].Not())
	case network.PrimNOT:
		e.solver.AddClause(out.Not(), ins[0].Not())
		e.solver.AddClause(out, ins[0])
	case network.PrimAND:
		e.solver.AddAndGate(out, ins...)
	case network.PrimNAND:
		e.solver.AddAndGate(out.Not(), ins...)
	case network.PrimOR:
		e.solver.AddOrGate(out, ins...)
	case network.PrimNOR:
		e.solver.AddNorGate(out, ins...)
	case network.PrimXOR:
		e.solver.AddXorGate(out, ins...)
	case network.PrimXNOR:
		e.solver.AddXorGate(out.Not(), ins...)
	default:
		panic(fmt.Sprintf("structenc: unhandled primitive %v", prim))
	}
}

// Solve runs the solver under the given unit assumptions.
func (e *StructEngine) Solve(assumptions []satif.Lit) (satif.SolveResult, satif.Model) {
	r := e.solver.Solve(assumptions)
	e.logger.Debug().Int("assumptions", len(assumptions)).Stringer("result", r).Msg("solve")
	if r == satif.Sat {
		return r, e.solver.Model()
	}
	return r, nil
}
