package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atpg-sat/satcore/network"
)

// buildAnd2 builds the seed S1/S2 circuit: inputs a, b; gate g = AND(a,b);
// output z = g. faults, if given, are registered before Finalize.
func buildAnd2(t *testing.T, faults ...*network.Fault) (*network.Network, network.NodeID, network.NodeID, network.NodeID, network.NodeID) {
	t.Helper()
	b := network.NewBuilder()
	a := network.NewPPI(0)
	bb := network.NewPPI(1)
	g := network.NewGate(2, network.PrimAND, []network.NodeID{0, 1})
	z := network.NewPPO(3, 2)
	b.AddNode(a)
	b.AddNode(bb)
	b.AddNode(g)
	b.AddNode(z)
	for _, f := range faults {
		b.AddFault(f)
	}
	net := b.Finalize()
	return net, a.ID(), bb.ID(), g.ID(), z.ID()
}

func TestS1_AndStuckAt1OnInputA(t *testing.T) {
	fault := network.NewBranchFault(0, 2, 0, 0, true, network.StuckAt)
	net, a, _, g, _ := buildAnd2(t, fault)

	excite := fault.ExcitationCondition()
	require.Len(t, excite, 1)
	assert.Equal(t, a, excite[0].Node)
	assert.Equal(t, network.FrameCur, excite[0].Frame)
	assert.False(t, excite[0].Value) // line must be driven to 0 to excite a stuck-at-1 fault

	ffrRoot, ok := fault.FFRRoot()
	require.True(t, ok)
	// a has single fanout into g, which in turn has single fanout into z,
	// so the whole a-g-z chain is one FFR rooted at the PPO z.
	assert.Equal(t, net.Node(g).Fanout()[0], ffrRoot)
}

func TestS2_AndStuckAt1OnOutputZ(t *testing.T) {
	_, _, _, g, _ := buildAnd2(t)
	fault := network.NewStemFault(0, g, true, network.StuckAt)
	excite := fault.ExcitationCondition()
	require.Len(t, excite, 1)
	assert.Equal(t, g, excite[0].Node)
	assert.False(t, excite[0].Value)
}

// buildXorReconverge builds the seed S3 circuit: input a; f = NOT(a);
// g = XOR(f, a); output z = g.
func buildXorReconverge(t *testing.T) (*network.Network, network.NodeID, network.NodeID, network.NodeID, network.NodeID) {
	t.Helper()
	b := network.NewBuilder()
	a := network.NewPPI(0)
	f := network.NewGate(1, network.PrimNOT, []network.NodeID{0})
	g := network.NewGate(2, network.PrimXOR, []network.NodeID{1, 0})
	z := network.NewPPO(3, 2)
	b.AddNode(a)
	b.AddNode(f)
	b.AddNode(g)
	b.AddNode(z)
	net := b.Finalize()
	return net, a.ID(), f.ID(), g.ID(), z.ID()
}

func TestS3_FanoutStemReconvergesAtXOR(t *testing.T) {
	net, a, f, g, _ := buildXorReconverge(t)

	// a fans out to both f (the inverter) and directly to g: it is an
	// FFR root despite feeding a reconvergent structure.
	aNode := net.Node(a)
	assert.True(t, aNode.IsFFRRoot())
	assert.Equal(t, 2, aNode.FanoutNum())

	// f has single fanout into g, so it is not itself an FFR root; nor is
	// g, which has single fanout into the PPO z. The FFR rooted at z thus
	// spans f, g, and z, while a (the reconvergent stem) is its own FFR.
	fNode := net.Node(f)
	assert.False(t, fNode.IsFFRRoot())

	gNode := net.Node(g)
	assert.False(t, gNode.IsFFRRoot())
	assert.Equal(t, network.PrimXOR, gNode.Primitive())
}

// buildTransitionDFF builds the seed S4 circuit: one DFF q whose input is
// its own output's inverter, modeled as a PPI (q, representing the DFF's
// state output) feeding a NOT gate whose output is the PPO observing the
// next-state value driven back into q.
func buildTransitionDFF(t *testing.T) (*network.Network, network.NodeID, network.NodeID, network.NodeID) {
	t.Helper()
	b := network.NewBuilder()
	q := network.NewPPI(0)
	inv := network.NewGate(1, network.PrimNOT, []network.NodeID{0})
	z := network.NewPPO(2, 1)
	b.AddNode(q)
	b.AddNode(inv)
	b.AddNode(z)
	b.AddDFF(q.ID(), z.ID())
	net := b.Finalize()
	return net, q.ID(), inv.ID(), z.ID()
}

func TestS4_TransitionFaultAtPPI(t *testing.T) {
	net, q, _, z := buildTransitionDFF(t)
	require.True(t, net.HasPrevState())

	d, ok := net.DFFInput(q)
	require.True(t, ok)
	assert.Equal(t, z, d)

	backQ, ok := net.DFFOutput(z)
	require.True(t, ok)
	assert.Equal(t, q, backQ)

	fault := network.NewStemFault(0, q, false, network.TransitionDelay)
	excite := fault.ExcitationCondition()
	require.Len(t, excite, 2)
	// Slow-to-rise: the line launches from 0 in the previous frame and
	// must reach 1 in the current one.
	assert.Equal(t, q, excite[0].Node)
	assert.Equal(t, network.FramePrev, excite[0].Frame)
	assert.False(t, excite[0].Value)
	assert.Equal(t, q, excite[1].Node)
	assert.Equal(t, network.FrameCur, excite[1].Frame)
	assert.True(t, excite[1].Value)
}

func TestFFRPartition_AndGate(t *testing.T) {
	net, a, bVar, g, z := buildAnd2(t)
	require.Equal(t, 4, net.NodeNum())

	// a, b, and g each have exactly one fanout (into g, into g, and into
	// z respectively), so none of them are FFR roots; only the PPO z is.
	// The whole chain collapses into a single FFR, since there is no
	// reconvergence or extra fanout anywhere in this circuit.
	assert.False(t, net.Node(a).IsFFRRoot())
	assert.False(t, net.Node(bVar).IsFFRRoot())
	assert.False(t, net.Node(g).IsFFRRoot())
	assert.True(t, net.Node(z).IsFFRRoot())

	require.Equal(t, 1, net.FFRNum())
	assert.ElementsMatch(t, []network.NodeID{a, bVar, g, z}, net.FFR(0).Nodes())
}

func TestAssignListDiffAndConflict(t *testing.T) {
	al, err := network.NewAssignList(
		network.Assign{Node: 0, Frame: network.FrameCur, Value: true},
		network.Assign{Node: 1, Frame: network.FrameCur, Value: false},
	)
	require.NoError(t, err)

	_, err = al.Add(network.Assign{Node: 0, Frame: network.FrameCur, Value: false})
	assert.ErrorIs(t, err, network.ErrConflictingAssign)

	other, err := network.NewAssignList(network.Assign{Node: 1, Frame: network.FrameCur, Value: false})
	require.NoError(t, err)
	diff := al.Diff(other)
	require.Len(t, diff, 1)
	assert.Equal(t, network.NodeID(0), diff[0].Node)
}
