package condlower

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
	"github.com/atpg-sat/satcore/structenc"
)

// Method selects one of the four CNF-lowering strategies (plus the
// legacy size-only bdd variant), matching the "method" option's closed
// enum.
type Method string

const (
	MethodNaive  Method = "naive"
	MethodCover  Method = "cover"
	MethodFactor Method = "factor"
	MethodAig    Method = "aig"
	MethodBDD    Method = "bdd"
)

// Lower is the top-level lowering operation: given one DetCond's
// mandatory cube and cover, emit the SAT assumption list — the mandatory
// literals concatenated with a single activator literal `a` such that
// asserting `a` forces the cover true — using the selected method, plus
// the Size this call added to engine's solver (the condition-lowering
// layer of the CNF-size breakdown).
//
// MethodBDD cannot Lower (see ErrBDDEstimateOnly); callers wanting that
// method's estimate use BDDEstimate directly against the DetCond's cover
// without a StructEngine at all.
func Lower(engine *structenc.StructEngine, method Method, mandatory network.AssignList, cover []network.AssignList, rewrite bool) ([]satif.Lit, Size, error) {
	if len(cover) == 0 {
		return nil, Size{}, ErrEmptyCoverOnDetected
	}

	var activator satif.Lit
	var size Size
	var err error

	switch method {
	case MethodNaive:
		activator, size, err = lowerNaive(engine, cover)
	case MethodCover:
		activator, size, err = lowerCover(engine, cover)
	case MethodFactor:
		activator, size, err = lowerFactor(engine, cover)
	case MethodAig:
		activator, size, err = lowerAig(engine, cover, rewrite)
	case MethodBDD:
		return nil, Size{}, ErrBDDEstimateOnly
	default:
		return nil, Size{}, ErrUnknownMethod
	}
	if err != nil {
		return nil, Size{}, err
	}

	assumptions := make([]satif.Lit, 0, len(mandatory)+1)
	for _, a := range mandatory {
		assumptions = append(assumptions, engine.ConvToLiteral(a))
	}
	assumptions = append(assumptions, activator)

	return assumptions, size, nil
}

// CalcCNFSizeForMethod estimates method's CNF size for cover without
// materializing any clause. For naive/cover/factor this runs CalcCNFSize over the
// corresponding Expr (naive and cover share the same flat sum-of-
// products shape and therefore the same estimate; factor's estimate
// reflects whatever sharing factorCover found). For aig, the estimate is
// three clauses per AND node of the constructed (but not Tseitin-
// encoded) AIG. For bdd, it delegates to BDDEstimate.
func CalcCNFSizeForMethod(method Method, cover []network.AssignList, bddThreshold int) (Size, error) {
	switch method {
	case MethodNaive, MethodCover:
		size, _, err := CalcCNFSize(BuildExpr(nil, cover))
		return size, err
	case MethodFactor:
		size, _, err := CalcCNFSize(factorCover(cover))
		return size, err
	case MethodAig:
		mgr := newAigMgr()
		if _, err := buildAig(mgr, BuildExpr(nil, cover)); err != nil {
			return Size{}, err
		}
		andNodes := 0
		for _, isAnd := range mgr.kind {
			if isAnd {
				andNodes++
			}
		}
		return Size{Clauses: 3 * andNodes, Literals: 7 * andNodes}, nil
	case MethodBDD:
		return BDDEstimate(cover, bddThreshold), nil
	default:
		return Size{}, ErrUnknownMethod
	}
}
