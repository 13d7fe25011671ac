package condlower

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// lowerCover implements the cover method: build the sum-of-products
// Expr over cover (BuildExpr, without mandatory — mandatory is asserted
// directly as assumption literals by Lower, never routed through the
// Tseitin pipeline), then recursively Tseitin-encode it via genTseitin.
func lowerCover(engine *structenc.StructEngine, cover []network.AssignList) (satif.Lit, Size, error) {
	expr := BuildExpr(nil, cover)
	return genTseitin(engine, expr)
}
