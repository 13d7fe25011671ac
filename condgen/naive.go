package condgen

import (
	"github.com/atpg-sat/satcore/booldiff"
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// NaiveAssumptions is the quick whole-FFR fallback: a single
// BoolDiffEnc is attached at the FFR root and its whole-cone
// PropVar is handed back as the sole assumption a caller needs to drive
// a solve, skipping the cube-enumeration machinery of RootCond entirely.
// It exists for callers that only need a quick per-FFR propagation
// check (e.g. a method-selection size comparison), not a full cover.
func NaiveAssumptions(engine *structenc.StructEngine, r network.NodeID) []satif.Lit {
	enc := booldiff.New(r)
	engine.AddSubenc(enc)
	engine.MakeCNFForNode(r, network.FrameCur)
	return []satif.Lit{enc.PropVar()}
}
