package structenc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atpg-sat/satcore/booldiff"
	"github.com/atpg-sat/satcore/ginisat"
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// buildAndOrNet builds: a,b,c PPI; g1 = AND(a,b); g2 = OR(g1,c);
// z = PPO(g2).
func buildAndOrNet(t *testing.T) *network.Network {
	t.Helper()
	b := network.NewBuilder()
	b.AddNode(network.NewPPI(0))
	b.AddNode(network.NewPPI(1))
	b.AddNode(network.NewPPI(2))
	b.AddNode(network.NewGate(3, network.PrimAND, []network.NodeID{0, 1}))
	b.AddNode(network.NewGate(4, network.PrimOR, []network.NodeID{3, 2}))
	b.AddNode(network.NewPPO(5, 4))
	return b.Finalize()
}

func cur(n int, v bool) network.Assign {
	return network.Assign{Node: network.NodeID(n), Frame: network.FrameCur, Value: v}
}

func TestEngine_GoodMachineFollowsGateSemantics(t *testing.T) {
	net := buildAndOrNet(t)
	solver := ginisat.New()
	e := structenc.New(net, solver)

	zTrue := e.ConvToLiteral(cur(5, true))

	// a=1, b=1 forces z=1 regardless of c.
	res, _ := e.Solve([]satif.Lit{e.ConvToLiteral(cur(0, true)), e.ConvToLiteral(cur(1, true)), zTrue.Not()})
	assert.Equal(t, satif.Unsat, res)

	// a=0, c=0 forces z=0.
	res, _ = e.Solve([]satif.Lit{e.ConvToLiteral(cur(0, false)), e.ConvToLiteral(cur(2, false)), zTrue})
	assert.Equal(t, satif.Unsat, res)

	// a=0, c=1 makes z=1 satisfiable.
	res, model := e.Solve([]satif.Lit{e.ConvToLiteral(cur(0, false)), e.ConvToLiteral(cur(2, true)), zTrue})
	require.Equal(t, satif.Sat, res)
	g1, ok := e.GVarMap().Lit(3)
	require.True(t, ok)
	assert.Equal(t, satif.False, model.Value(g1), "AND with a=0 is 0")
}

func TestEngine_MakeCNFIsIdempotent(t *testing.T) {
	net := buildAndOrNet(t)
	solver := ginisat.New()
	e := structenc.New(net, solver)

	e.MakeCNF([]network.NodeID{5}, nil)
	c1, l1 := solver.CnfSize()

	e.MakeCNF([]network.NodeID{5}, nil)
	e.MakeCNFForNode(4, network.FrameCur)
	c2, l2 := solver.CnfSize()

	assert.Equal(t, c1, c2)
	assert.Equal(t, l1, l2)
}

func TestEngine_ExtractSufficientConditionDispatchesToSubEncoder(t *testing.T) {
	net := buildAndOrNet(t)
	solver := ginisat.New()
	e := structenc.New(net, solver)

	enc := booldiff.New(3) // the AND gate
	e.AddSubenc(enc)
	e.MakeCNFForNode(3, network.FrameCur)

	res, model := e.Solve([]satif.Lit{enc.PropVar()})
	require.Equal(t, satif.Sat, res)

	conds, err := e.ExtractSufficientCondition(3, model)
	require.NoError(t, err)
	require.NotEmpty(t, conds)
	// Propagating the flip through the OR requires c at its
	// non-controlling value.
	v, ok := conds[0].Contains(2, network.FrameCur)
	require.True(t, ok)
	assert.False(t, v)

	_, err = e.ExtractSufficientCondition(4, model)
	assert.ErrorIs(t, err, structenc.ErrUnknownSubEncoder)
}

func TestEngine_DFFCrossesIntoPreviousFrame(t *testing.T) {
	// q -> NOT -> d, with (q, d) a flip-flop pair: q's frame-1 value
	// must equal NOT(q at frame 0).
	b := network.NewBuilder()
	b.AddNode(network.NewPPI(0))
	b.AddNode(network.NewGate(1, network.PrimNOT, []network.NodeID{0}))
	b.AddNode(network.NewPPO(2, 1))
	b.AddDFF(0, 2)
	net := b.Finalize()

	solver := ginisat.New()
	e := structenc.New(net, solver)
	e.SetTwoFrame(true)

	qCur := e.ConvToLiteral(cur(0, true))
	qPrev, ok := e.HVarMap().Lit(0)
	require.True(t, ok, "materializing q at frame 1 must pull in its frame-0 cone")

	// q@1 and q@0 can never agree through the inverting feedback.
	res, _ := e.Solve([]satif.Lit{qCur, qPrev})
	assert.Equal(t, satif.Unsat, res)
	res, _ = e.Solve([]satif.Lit{qCur.Not(), qPrev.Not()})
	assert.Equal(t, satif.Unsat, res)
	res, _ = e.Solve([]satif.Lit{qCur, qPrev.Not()})
	assert.Equal(t, satif.Sat, res)
}
