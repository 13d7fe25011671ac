package justify

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// Strategy selects between the two back-trace variants.
type Strategy int

const (
	// Just1 is the plain recursive back-trace with no memoization.
	Just1 Strategy = iota
	// Just2 additionally caches visited (node, frame) pairs so a node
	// reached on more than one path is recursed into only once.
	Just2
)

// visitKey identifies one (node, frame) back-trace point, used by Just2's
// cache.
type visitKey struct {
	node  network.NodeID
	frame network.Frame
}

// Justifier back-traces an AssignList down to PPIs. It is constructed
// with the current- and previous-frame VarMap views directly rather
// than reaching into an engine for them, so both frames are an
// explicit part of its contract. It borrows both views and the
// model; it owns nothing and may be reused across calls as long as the
// model it was last given remains current for those views.
type Justifier struct {
	strategy  Strategy
	net       *network.Network
	cur, prev *structenc.FrameView
	model     satif.Model
	visited   map[visitKey]bool // nil under Just1
}

// New returns a Justifier using strategy, reading node values out of
// model via cur (frame-current VarMap view) and prev (frame-previous
// VarMap view).
func New(strategy Strategy, net *network.Network, cur, prev *structenc.FrameView, model satif.Model) *Justifier {
	j := &Justifier{strategy: strategy, net: net, cur: cur, prev: prev, model: model}
	if strategy == Just2 {
		j.visited = make(map[visitKey]bool)
	}
	return j
}

// Justify produces a PPI-only AssignList implying every assign in
// targets, under the good-machine CNF. It never fails: the caller-
// supplied model is already known to satisfy targets, so recursion
// always bottoms out at PPIs.
func (j *Justifier) Justify(targets network.AssignList) network.AssignList {
	var result network.AssignList
	for _, t := range targets {
		result = j.backtrace(result, t.Node, t.Frame)
	}
	return result
}

// value reads n's model value at frame f via the matching VarMap view.
func (j *Justifier) value(n network.NodeID, f network.Frame) bool {
	view := j.cur
	if f == network.FramePrev {
		view = j.prev
	}
	l, ok := view.Lit(n)
	if !ok {
		// The node's own CNF is part of the TFI closure of whatever made
		// the target satisfiable in the first place, so its literal must
		// already exist; a missing one means the caller back-traced a
		// target outside the engine's materialized closure.
		panic("justify: node has no literal in this frame's VarMap")
	}
	return j.model.Value(l) == satif.True
}

// backtrace records n's contribution to result, emitting a PPI
// assignment directly or recursing through n's driving gate, and
// returns the (possibly extended) result.
func (j *Justifier) backtrace(result network.AssignList, n network.NodeID, f network.Frame) network.AssignList {
	if j.strategy == Just2 {
		key := visitKey{node: n, frame: f}
		if j.visited[key] {
			return result
		}
		j.visited[key] = true
	}

	node := j.net.Node(n)
	val := j.value(n, f)

	if node.Kind() == network.KindPPI {
		if f == network.FrameCur {
			if d, ok := j.net.DFFInput(n); ok {
				// The PPI is a DFF output; under two-frame reasoning its
				// frame-1 value is pinned to its paired DFF input's
				// frame-0 value, so the real PI back-trace continues
				// there. A missing frame-0 literal means the engine ran
				// single-frame (full scan), where the DFF output is a
				// directly controllable input.
				if _, built := j.prev.Lit(d); built {
					return j.backtrace(result, d, network.FramePrev)
				}
			}
		}
		out, err := result.Add(network.Assign{Node: n, Frame: f, Value: val})
		if err != nil {
			// A genuine PI can only be assigned once per frame by a
			// satisfiable model; a conflict here would mean the model
			// itself is inconsistent.
			panic(err)
		}
		return out
	}

	if node.Kind() == network.KindPPO {
		return j.backtrace(result, node.FaninAt(0), f)
	}

	switch node.Primitive() {
	case network.PrimBUF:
		return j.backtrace(result, node.FaninAt(0), f)
	case network.PrimNOT:
		return j.backtrace(result, node.FaninAt(0), f)
	case network.PrimAND, network.PrimNAND, network.PrimOR, network.PrimNOR:
		return j.backtraceControlling(result, node, f, val)
	case network.PrimXOR, network.PrimXNOR:
		for _, fi := range node.Fanin() {
			result = j.backtrace(result, fi, f)
		}
		return result
	default:
		panic("justify: unknown primitive")
	}
}

// backtraceControlling handles AND/NAND/OR/NOR. If the gate's output
// value equals its controlling output value, exactly one fanin at the
// controlling input value (the first in fanin order) is chosen and
// recursed into; otherwise every fanin is at the
// non-controlling value and must all be recursed into.
func (j *Justifier) backtraceControlling(result network.AssignList, node *network.Node, f network.Frame, outVal bool) network.AssignList {
	ctrlIn, ctrlOut, err := node.Primitive().ControllingValue()
	if err != nil {
		panic(err)
	}

	if outVal == ctrlOut {
		for _, fi := range node.Fanin() {
			if j.value(fi, f) == ctrlIn {
				return j.backtrace(result, fi, f)
			}
		}
		panic("justify: controlling output with no controlling-valued fanin")
	}

	for _, fi := range node.Fanin() {
		result = j.backtrace(result, fi, f)
	}
	return result
}
