package condlower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atpg-sat/satcore/condlower"
	"github.com/atpg-sat/satcore/ginisat"
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// buildFourPPI returns a network of four unconnected PPIs and their
// ids; each test builds its own StructEngine over it.
func buildFourPPI(t *testing.T) (*network.Network, [4]network.NodeID) {
	t.Helper()
	b := network.NewBuilder()
	ids := [4]network.NodeID{0, 1, 2, 3}
	require.NotPanics(t, func() {
		for _, id := range ids {
			b.AddNode(network.NewPPI(id))
		}
	})
	return b.Finalize(), ids
}

func cubeOf(nodes []network.NodeID, vals []bool) network.AssignList {
	al := make(network.AssignList, len(nodes))
	for i := range nodes {
		al[i] = network.Assign{Node: nodes[i], Frame: network.FrameCur, Value: vals[i]}
	}
	return al
}

func TestLower_NaiveProducesSatisfiableAssumption(t *testing.T) {
	net, ids := buildFourPPI(t)
	solver := ginisat.New()
	engine := structenc.New(net, solver)

	cover := []network.AssignList{
		cubeOf(ids[:2], []bool{true, false}),
		cubeOf(ids[2:], []bool{true, true}),
	}

	assumps, size, err := condlower.Lower(engine, condlower.MethodNaive, nil, cover, false)
	require.NoError(t, err)
	require.Len(t, assumps, 1)
	assert.Positive(t, size.Clauses)

	res := solver.Solve(assumps)
	assert.Equal(t, satif.Sat, res)
}

func TestLower_AllMethodsAgreeOnSatisfiability(t *testing.T) {
	cover := func(net *network.Network, ids [4]network.NodeID) []network.AssignList {
		return []network.AssignList{
			cubeOf(ids[:2], []bool{true, false}),
			cubeOf(ids[1:3], []bool{true, true}),
			cubeOf(ids[2:], []bool{false, true}),
		}
	}

	for _, m := range []condlower.Method{condlower.MethodNaive, condlower.MethodCover, condlower.MethodFactor, condlower.MethodAig} {
		t.Run(string(m), func(t *testing.T) {
			net, ids := buildFourPPI(t)
			solver := ginisat.New()
			engine := structenc.New(net, solver)

			assumps, _, err := condlower.Lower(engine, m, nil, cover(net, ids), false)
			require.NoError(t, err)

			res := solver.Solve(assumps)
			assert.Equal(t, satif.Sat, res, "method %s should find the cover satisfiable", m)
		})
	}
}

func TestLower_EmptyCoverIsRejected(t *testing.T) {
	net, _ := buildFourPPI(t)
	solver := ginisat.New()
	engine := structenc.New(net, solver)

	_, _, err := condlower.Lower(engine, condlower.MethodNaive, nil, nil, false)
	assert.ErrorIs(t, err, condlower.ErrEmptyCoverOnDetected)
}

func TestLower_BDDMethodIsEstimateOnly(t *testing.T) {
	net, _ := buildFourPPI(t)
	solver := ginisat.New()
	engine := structenc.New(net, solver)

	_, _, err := condlower.Lower(engine, condlower.MethodBDD, nil, []network.AssignList{{}}, false)
	assert.ErrorIs(t, err, condlower.ErrBDDEstimateOnly)
}

func TestCalcCNFSize_MonotoneUnderAppendedCube(t *testing.T) {
	_, ids := buildFourPPI(t)
	cover := []network.AssignList{cubeOf(ids[:2], []bool{true, false})}

	before, _, err := condlower.CalcCNFSize(condlower.BuildExpr(nil, cover))
	require.NoError(t, err)

	cover = append(cover, cubeOf(ids[2:], []bool{true, true}))
	after, _, err := condlower.CalcCNFSize(condlower.BuildExpr(nil, cover))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, after.Clauses, before.Clauses)
	assert.GreaterOrEqual(t, after.Literals, before.Literals)
}

func TestCalcCNFSize_ConstantZeroIsError(t *testing.T) {
	_, _, err := condlower.CalcCNFSize(condlower.Const0())
	assert.ErrorIs(t, err, condlower.ErrConstantZero)
}

func TestFactorCover_SharesRepeatedLiteral(t *testing.T) {
	_, ids := buildFourPPI(t)
	shared := network.Assign{Node: ids[0], Frame: network.FrameCur, Value: true}

	cover := []network.AssignList{
		{shared, {Node: ids[1], Frame: network.FrameCur, Value: true}},
		{shared, {Node: ids[2], Frame: network.FrameCur, Value: true}},
		{shared, {Node: ids[3], Frame: network.FrameCur, Value: false}},
	}

	flatSize, err := condlower.CalcCNFSizeForMethod(condlower.MethodCover, cover, 0)
	require.NoError(t, err)

	factoredSize, err := condlower.CalcCNFSizeForMethod(condlower.MethodFactor, cover, 0)
	require.NoError(t, err)

	assert.LessOrEqual(t, factoredSize.Clauses, flatSize.Clauses)
}

func TestBDDEstimate_NonNegativeAndGrowsWithCover(t *testing.T) {
	_, ids := buildFourPPI(t)
	one := []network.AssignList{cubeOf(ids[:2], []bool{true, false})}
	two := append(one, cubeOf(ids[2:], []bool{true, true}))

	small := condlower.BDDEstimate(one, 1000)
	large := condlower.BDDEstimate(two, 1000)

	assert.Positive(t, small.Clauses)
	assert.GreaterOrEqual(t, large.Clauses, small.Clauses)
}
