package extract

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// Cone is the read-only view of a fault cone the extractor needs.
// *booldiff.BoolDiffEnc implements it.
type Cone interface {
	RootNode() network.NodeID
	Network() *network.Network
	InCone(n network.NodeID) bool
	GoodLit(n network.NodeID) satif.Lit
	FaultLit(n network.NodeID) satif.Lit
}

// ChoicePolicy selects which one of several controlling-valued side
// inputs to record when a gate's propagation is masked by more than one
// candidate. candidates is
// never empty.
type ChoicePolicy func(candidates []network.NodeID) network.NodeID

// LexFirst is the default policy: the lexicographically (numerically)
// first candidate node id.
func LexFirst(candidates []network.NodeID) network.NodeID {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c < best {
			best = c
		}
	}
	return best
}
