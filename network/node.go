package network

// NodeID is a 0-based, Network-unique node identifier. IDs are stable for
// the lifetime of the owning Network, as is each node's fanin list.
type NodeID int

// Node is one vertex of the circuit DAG: a primary input, a flip-flop
// pseudo-port, or a logic gate. Node values are owned by a Network and
// are immutable once constructed; every field is fixed at build time.
type Node struct {
	id   NodeID
	kind NodeKind
	prim Primitive // meaningful only when kind == KindGate

	fanin  []NodeID // ordered; empty for PPI
	fanout []NodeID // unordered; empty for PPO

	// dominator is the immediate dominator of this node in the fanout
	// DAG (the node through which every path to a primary output must
	// pass), or -1 if none (the node reaches more than one sink without
	// a single dominating gate).
	dominator NodeID
	hasDom    bool

	ffrRoot  bool
	mffcRoot bool
	isPPIPin bool
}

// NewPPI constructs a primary-input / pseudo-primary-input node. It has no
// fanin. Like a gate, it is an FFR root only until it gains exactly one
// fanout edge; addFanout recomputes the flag as edges are wired in, so a
// singly-fanned-out PPI ends up absorbed into the FFR rooted downstream.
func NewPPI(id NodeID) *Node {
	return &Node{id: id, kind: KindPPI, dominator: -1, ffrRoot: true, mffcRoot: true}
}

// NewPPO constructs a primary-output / pseudo-primary-output node with a
// single fanin (the signal it observes). A PPO has no fanout and is
// unconditionally an FFR root regardless of fanout count.
func NewPPO(id NodeID, in NodeID) *Node {
	return &Node{id: id, kind: KindPPO, fanin: []NodeID{in}, dominator: -1, ffrRoot: true}
}

// NewGate constructs a logic-gate node with the given primitive and
// ordered fanin list.
func NewGate(id NodeID, prim Primitive, fanin []NodeID) *Node {
	cp := make([]NodeID, len(fanin))
	copy(cp, fanin)
	return &Node{id: id, kind: KindGate, prim: prim, fanin: cp, dominator: -1, ffrRoot: true}
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID { return n.id }

// Kind returns whether this node is a PPI, PPO, or logic gate.
func (n *Node) Kind() NodeKind { return n.kind }

// Primitive returns the node's gate function. Only meaningful when
// Kind() == KindGate.
func (n *Node) Primitive() Primitive { return n.prim }

// FaninNum returns the number of fanin edges.
func (n *Node) FaninNum() int { return len(n.fanin) }

// Fanin returns the ordered list of fanin node ids. The slice must not be
// mutated by callers.
func (n *Node) Fanin() []NodeID { return n.fanin }

// FaninAt returns the pos'th fanin node id.
func (n *Node) FaninAt(pos int) NodeID { return n.fanin[pos] }

// Fanout returns the list of fanout node ids. The slice must not be
// mutated by callers.
func (n *Node) Fanout() []NodeID { return n.fanout }

// FanoutNum returns the number of fanout edges. A node whose FanoutNum is
// not exactly 1 (or that is itself a PPO) is an FFR root.
func (n *Node) FanoutNum() int { return len(n.fanout) }

// Dominator returns the immediate dominator node id and true, or
// (0, false) if this node has no dominator (reaches multiple sinks
// independently).
func (n *Node) Dominator() (NodeID, bool) {
	if !n.hasDom {
		return 0, false
	}
	return n.dominator, true
}

// IsFFRRoot reports whether this node is the root of its fanout-free
// region: its fanout is not exactly 1, or it is a PPO.
func (n *Node) IsFFRRoot() bool { return n.ffrRoot }

// IsMFFCRoot reports whether this node is the root of a maximal
// fanout-free cone under dominator analysis.
func (n *Node) IsMFFCRoot() bool { return n.mffcRoot }

// addFanout is used only by the Network builder while wiring the DAG.
func (n *Node) addFanout(to NodeID) {
	n.fanout = append(n.fanout, to)
	n.ffrRoot = len(n.fanout) != 1 || n.kind == KindPPO
}

// setDominator is used only by the Network builder.
func (n *Node) setDominator(dom NodeID, has bool) {
	n.dominator, n.hasDom = dom, has
}

// setMFFCRoot is used only by the Network builder.
func (n *Node) setMFFCRoot(v bool) { n.mffcRoot = v }
