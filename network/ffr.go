package network

// FFR is a fanout-free region: the maximal single-output subtree of
// nodes rooted at a fanout (or PPO) node.
type FFR struct {
	id      int
	root    NodeID
	nodes   []NodeID // all nodes in the region, including the root
	faults  []FaultID
}

// ID returns the FFR's identifier, which is also its index within the
// owning Network's FFR list.
func (f *FFR) ID() int { return f.id }

// Root returns the FFR's root node id.
func (f *FFR) Root() NodeID { return f.root }

// Nodes returns every node contained in the region, including the root.
func (f *FFR) Nodes() []NodeID { return f.nodes }

// Faults returns the representative faults whose origin node lies in
// this region.
func (f *FFR) Faults() []FaultID { return f.faults }

// MFFC is a maximal fanout-free cone: the union of FFRs dominated by a
// single root node.
type MFFC struct {
	id     int
	root   NodeID
	ffrs   []int // FFR ids contained in this cone
	faults []FaultID
}

// ID returns the MFFC's identifier.
func (m *MFFC) ID() int { return m.id }

// Root returns the MFFC's root node id.
func (m *MFFC) Root() NodeID { return m.root }

// FFRs returns the ids of the FFRs partitioned into this cone.
func (m *MFFC) FFRs() []int { return m.ffrs }

// Faults returns the representative faults contained in this cone.
func (m *MFFC) Faults() []FaultID { return m.faults }
