package network

import "sort"

// Network owns the full circuit DAG for the lifetime it is used: nodes,
// their FFR/MFFC partition, and the fault list; encoders borrow them
// read-only. Build one with NewBuilder, add nodes
// and faults, then call Finalize to compute fanout, dominators, and the
// FFR/MFFC partition.
type Network struct {
	nodes        []*Node
	ffrs         []*FFR
	mffcs        []*MFFC
	faults       []*Fault
	hasPrevState bool

	// dffQtoD/dffDtoQ pair a flip-flop's pseudo-output (Q, modeled as a
	// PPI — it sources a value into the combinational logic) with its
	// pseudo-input (D, modeled as a PPO — it captures a value out of the
	// combinational logic), per the Glossary's PPI/PPO definition. Under
	// the transition-delay model, Q's frame-1 value is the signal D
	// carried at frame 0.
	dffQtoD map[NodeID]NodeID
	dffDtoQ map[NodeID]NodeID
}

// DFFInput returns the PPO node id that feeds the flip-flop whose output
// is the PPI q, and true if q is a registered flip-flop output.
func (n *Network) DFFInput(q NodeID) (NodeID, bool) {
	d, ok := n.dffQtoD[q]
	return d, ok
}

// DFFOutput returns the PPI node id driven by the flip-flop whose input
// is the PPO d, and true if d is a registered flip-flop input.
func (n *Network) DFFOutput(d NodeID) (NodeID, bool) {
	q, ok := n.dffDtoQ[d]
	return q, ok
}

// NodeNum returns the number of nodes in the network.
func (n *Network) NodeNum() int { return len(n.nodes) }

// Node returns the node with the given id.
func (n *Network) Node(id NodeID) *Node { return n.nodes[id] }

// FFRNum returns the number of fanout-free regions.
func (n *Network) FFRNum() int { return len(n.ffrs) }

// FFR returns the fanout-free region with the given id.
func (n *Network) FFR(id int) *FFR { return n.ffrs[id] }

// FFRList returns every fanout-free region, ordered by id.
func (n *Network) FFRList() []*FFR { return n.ffrs }

// MFFCNum returns the number of maximal fanout-free cones.
func (n *Network) MFFCNum() int { return len(n.mffcs) }

// MFFC returns the maximal fanout-free cone with the given id.
func (n *Network) MFFC(id int) *MFFC { return n.mffcs[id] }

// MFFCList returns every maximal fanout-free cone, ordered by id.
func (n *Network) MFFCList() []*MFFC { return n.mffcs }

// RepFaultList returns every representative fault in the network.
func (n *Network) RepFaultList() []*Fault {
	out := make([]*Fault, 0, len(n.faults))
	for _, f := range n.faults {
		if f.IsRepresentative() {
			out = append(out, f)
		}
	}
	return out
}

// Fault returns the fault with the given id.
func (n *Network) Fault(id FaultID) *Fault { return n.faults[id] }

// HasPrevState reports whether this network contains flip-flops, i.e.
// whether frame-0 (previous-frame) reasoning is ever meaningful for it.
func (n *Network) HasPrevState() bool { return n.hasPrevState }

// Builder incrementally constructs a Network. It is the in-memory
// analog of what a netlist loader (out of scope for this package) would
// drive; tests and callers that already have a gate list in memory use
// it directly.
type Builder struct {
	net *Network
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{net: &Network{}}
}

// AddNode registers a pre-constructed node. Nodes must be added in an
// order such that every fanin of a gate node has already been added
// (i.e. in topological order from PPIs); AddNode panics otherwise, since
// a netlist with a dangling fanin reference is a caller contract
// violation, not a recoverable runtime condition.
func (b *Builder) AddNode(n *Node) {
	if int(n.ID()) != len(b.net.nodes) {
		panic("network: node ids must be assigned densely in addition order")
	}
	for _, fi := range n.Fanin() {
		if int(fi) >= len(b.net.nodes) {
			panic("network: fanin references a node not yet added")
		}
	}
	b.net.nodes = append(b.net.nodes, n)
	for _, fi := range n.Fanin() {
		b.net.nodes[fi].addFanout(n.ID())
	}
}

// SetHasPrevState marks the network as containing flip-flops, enabling
// frame-0 reasoning under the transition-delay model. A netlist loader
// would derive this from the presence of DFF pseudo-ports; callers
// building networks by hand must set it explicitly.
func (b *Builder) SetHasPrevState(v bool) { b.net.hasPrevState = v }

// AddDFF registers a flip-flop pairing: q is the PPI node representing
// its state output, d is the PPO node representing the value captured
// into it each clock. Both nodes must already have been added. Calling
// AddDFF at least once implies SetHasPrevState(true).
func (b *Builder) AddDFF(q, d NodeID) {
	if b.net.dffQtoD == nil {
		b.net.dffQtoD = make(map[NodeID]NodeID)
		b.net.dffDtoQ = make(map[NodeID]NodeID)
	}
	b.net.dffQtoD[q] = d
	b.net.dffDtoQ[d] = q
	b.net.hasPrevState = true
}

// AddFault registers a fault. Faults must be added after every node
// they reference.
func (b *Builder) AddFault(f *Fault) {
	if int(f.ID()) != len(b.net.faults) {
		panic("network: fault ids must be assigned densely in addition order")
	}
	b.net.faults = append(b.net.faults, f)
}

// Finalize computes each node's dominator, partitions the network into
// FFRs and MFFCs, and assigns faults to their containing FFR/MFFC. It
// must be called exactly once, after every node and fault has been
// added, and returns the completed Network.
func (b *Builder) Finalize() *Network {
	net := b.net
	net.computeDominators()
	net.computeFFRs()
	net.computeMFFCs()
	net.assignFaultsToRegions()
	return net
}

// computeDominators runs a Cooper-Harvey-Kennedy-style iterative
// dominator computation over the *reverse* graph (fanout edges), i.e.
// it computes postdominators: d dominates n iff every path from n to an
// observable output passes through d. A DAG admits a single pass in
// reverse-topological (sinks-first) order; no fixpoint iteration is
// needed because there are no cycles to stabilize.
//
// A virtual sink (represented by id -1) stands in for "every real
// primary output"; every PPO's implicit single successor is the virtual
// sink. A node whose computed dominator is the virtual sink has no real
// dominator (Node.Dominator reports ok=false for it).
func (net *Network) computeDominators() {
	const virtualSink = NodeID(-1)

	// order[id] is this node's rank in the sinks-first processing order;
	// the virtual sink gets rank 0, and rank increases moving backward
	// (toward PPIs). idom[id] holds the running dominator, keyed the
	// same way (virtualSink's own idom is itself).
	order := make(map[NodeID]int, len(net.nodes)+1)
	idom := make(map[NodeID]NodeID, len(net.nodes)+1)
	order[virtualSink] = 0
	idom[virtualSink] = virtualSink

	processed := make([]bool, len(net.nodes))
	rank := 1
	remaining := len(net.nodes)
	for remaining > 0 {
		progressed := false
		for _, node := range net.nodes {
			if processed[node.ID()] {
				continue
			}
			succs := successorsFor(node, virtualSink)
			ready := true
			for _, s := range succs {
				if s != virtualSink && !processed[s] {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			var nd NodeID
			first := true
			for _, s := range succs {
				if first {
					nd = s
					first = false
					continue
				}
				nd = intersectDom(nd, s, order, idom)
			}
			idom[node.ID()] = nd
			order[node.ID()] = rank
			rank++
			processed[node.ID()] = true
			progressed = true
			remaining--
		}
		if !progressed {
			// A node's successors never finish processing; cannot
			// happen for an acyclic network, which is the only kind
			// this package accepts. Treated as an impossible-state
			// invariant violation rather than looping
			// forever.
			panic("network: dominator computation stalled; network is not acyclic")
		}
	}

	for _, node := range net.nodes {
		d := idom[node.ID()]
		node.setDominator(d, d != virtualSink)
	}
}

// successorsFor returns the ids a node's dominance edges point to: its
// real fanout, or the virtual sink if it has none.
func successorsFor(n *Node, virtualSink NodeID) []NodeID {
	if len(n.Fanout()) == 0 {
		return []NodeID{virtualSink}
	}
	return n.Fanout()
}

// intersectDom finds the nearest common dominator of a and b by walking
// the lower-rank chain upward (toward the sink) until both sides agree,
// per the standard finger algorithm.
func intersectDom(a, b NodeID, order map[NodeID]int, idom map[NodeID]NodeID) NodeID {
	for a != b {
		for order[a] > order[b] {
			a = idom[a]
		}
		for order[b] > order[a] {
			b = idom[b]
		}
	}
	return a
}

// computeFFRs partitions every node into its fanout-free region: the
// maximal chain of single-fanout nodes terminating at an FFR-root node
// (fanout != 1, or a PPO).
func (net *Network) computeFFRs() {
	rootOfCache := make(map[NodeID]NodeID, len(net.nodes))
	var rootOf func(NodeID) NodeID
	rootOf = func(id NodeID) NodeID {
		if r, ok := rootOfCache[id]; ok {
			return r
		}
		n := net.nodes[id]
		var r NodeID
		if n.IsFFRRoot() {
			r = id
		} else {
			r = rootOf(n.Fanout()[0])
		}
		rootOfCache[id] = r
		return r
	}

	members := make(map[NodeID][]NodeID)
	var order []NodeID
	seen := make(map[NodeID]bool)
	for _, n := range net.nodes {
		r := rootOf(n.ID())
		if !seen[r] {
			seen[r] = true
			order = append(order, r)
		}
		members[r] = append(members[r], n.ID())
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	net.ffrs = make([]*FFR, 0, len(order))
	for i, root := range order {
		net.ffrs = append(net.ffrs, &FFR{id: i, root: root, nodes: members[root]})
	}
}

// computeMFFCs partitions the FFRs into maximal fanout-free cones under
// the dominator relation: two FFRs belong to the same cone iff their
// roots are related by dominance all the way up to a single MFFC root
// (a node all of whose dominated FFR roots fan in, directly or
// indirectly, only within the cone). This implementation uses the
// simplified, conservative rule: an FFR belongs to the MFFC rooted at
// the nearest ancestor
// FFR-root reachable purely through dominator edges that are themselves
// FFR roots; a node with no dominator (reaches multiple independent
// outputs) is always its own MFFC root.
func (net *Network) computeMFFCs() {
	ffrRootSet := make(map[NodeID]int, len(net.ffrs))
	for _, f := range net.ffrs {
		ffrRootSet[f.root] = f.id
	}

	mffcRootOfFFR := make(map[int]NodeID, len(net.ffrs))
	for _, f := range net.ffrs {
		node := net.nodes[f.root]
		cur := node
		mRoot := f.root
		for {
			dom, ok := cur.Dominator()
			if !ok {
				break
			}
			domNode := net.nodes[dom]
			if _, isFFRRoot := ffrRootSet[dom]; !isFFRRoot {
				// The dominator is mid-FFR (fanout==1 non-root); climb
				// through it by following its own dominator chain.
				cur = domNode
				continue
			}
			mRoot = dom
			cur = domNode
		}
		mffcRootOfFFR[f.id] = mRoot
	}

	members := make(map[NodeID][]int)
	var order []NodeID
	seen := make(map[NodeID]bool)
	for _, f := range net.ffrs {
		r := mffcRootOfFFR[f.id]
		if !seen[r] {
			seen[r] = true
			order = append(order, r)
		}
		members[r] = append(members[r], f.id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	net.mffcs = make([]*MFFC, 0, len(order))
	rootIsMFFC := make(map[NodeID]bool, len(net.nodes))
	for i, root := range order {
		net.mffcs = append(net.mffcs, &MFFC{id: i, root: root, ffrs: members[root]})
		rootIsMFFC[root] = true
	}
	for _, n := range net.nodes {
		n.setMFFCRoot(rootIsMFFC[n.ID()])
	}
}

// assignFaultsToRegions fills each fault's FFR-root backreference.
func (net *Network) assignFaultsToRegions() {
	nodeFFRRoot := make(map[NodeID]NodeID, len(net.nodes))
	for _, ffr := range net.ffrs {
		for _, nid := range ffr.nodes {
			nodeFFRRoot[nid] = ffr.root
		}
	}
	for _, f := range net.faults {
		line := f.variant.Line
		if root, ok := nodeFFRRoot[line]; ok {
			f.setFFRRoot(root)
			if !f.IsRepresentative() {
				continue
			}
			for _, ffr := range net.ffrs {
				if ffr.root == root {
					ffr.faults = append(ffr.faults, f.id)
				}
			}
		}
	}
	for _, mffc := range net.mffcs {
		for _, ffrID := range mffc.ffrs {
			mffc.faults = append(mffc.faults, net.ffrs[ffrID].faults...)
		}
	}
}
