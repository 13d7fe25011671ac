package condlower

import "github.com/atpg-sat/satcore/network"

// bddNodeKind classifies a BDD node for the legacy bdd size estimator:
// "2 clauses/6 literals for a pure internal node, 2/2 for a node with
// one zero-child, 1/3 for a node with one one-child."
type bddNodeKind int

const (
	bddInternal  bddNodeKind = iota // both children are other internal nodes
	bddZeroChild                    // exactly one child is the constant-0 terminal
	bddOneChild                     // exactly one child is the constant-1 terminal
)

// bddNode is one node of an estimated BDD chain. Only its kind is
// kept: no decision variable or child pointers are stored, since the
// estimator needs nothing beyond the per-kind clause/literal cost.
type bddNode struct {
	kind bddNodeKind
}

// BDDEstimate implements the legacy bdd variant: convert cover to a
// heap-ordered set of per-cube BDDs, repeatedly OR the two smallest
// until the running estimate exceeds threshold, and report the
// estimated (clauses, literals) without ever materializing a BDD package
// or any CNF — this method is size-estimation only. There is no Lower
// for this method (see ErrBDDEstimateOnly); callers comparing methods
// via CalcCNFSizeForMethod use this instead.
func BDDEstimate(cover []network.AssignList, threshold int) Size {
	nodes := bddForestFromCover(cover)

	for len(nodes) > 1 {
		total := sizeOfForest(nodes)
		if total.Clauses >= threshold {
			break
		}
		i, j := twoSmallest(nodes)
		merged := orBDD(nodes[i], nodes[j])
		nodes = removeAndAppend(nodes, i, j, merged)
	}

	return sizeOfForest(nodes)
}

// bddForestFromCover builds one per-cube BDD chain: a cube with n
// literals becomes a chain of n nodes, n-1 zero-child nodes followed by
// one one-child node for the edge to constant-1, since a single product
// term is exactly the classic "single one-path" BDD shape.
func bddForestFromCover(cover []network.AssignList) [][]*bddNode {
	forest := make([][]*bddNode, 0, len(cover))
	for _, cube := range cover {
		chain := make([]*bddNode, len(cube))
		for i := range cube {
			if i == len(cube)-1 {
				chain[i] = &bddNode{kind: bddOneChild}
			} else {
				chain[i] = &bddNode{kind: bddZeroChild}
			}
		}
		forest = append(forest, chain)
	}
	return forest
}

// orBDD estimates the merge of two single-cube BDD chains into one
// combined chain: disjoining two product terms generally costs one pure
// internal node before the two original chains' tails, per the standard
// ROBDD apply(OR) shape (a new decision node whose low/high subtrees are
// the two operands, structurally fused above them).
func orBDD(a, b []*bddNode) []*bddNode {
	merged := make([]*bddNode, 0, len(a)+len(b)+1)
	merged = append(merged, &bddNode{kind: bddInternal})
	merged = append(merged, a...)
	merged = append(merged, b...)
	return merged
}

func sizeOfForest(forest [][]*bddNode) Size {
	var total Size
	for _, chain := range forest {
		for _, n := range chain {
			total = total.Add(bddNodeSize(n))
		}
	}
	return total
}

func bddNodeSize(n *bddNode) Size {
	switch n.kind {
	case bddInternal:
		return Size{Clauses: 2, Literals: 6}
	case bddZeroChild:
		return Size{Clauses: 2, Literals: 2}
	default: // bddOneChild
		return Size{Clauses: 1, Literals: 3}
	}
}

// twoSmallest returns the indices of the two lowest-estimated-size
// chains in forest, for the repeatedly-OR-the-two-smallest merge.
func twoSmallest(forest [][]*bddNode) (int, int) {
	type scored struct {
		idx int
		sz  int
	}
	scores := make([]scored, len(forest))
	for i, chain := range forest {
		s := Size{}
		for _, n := range chain {
			s = s.Add(bddNodeSize(n))
		}
		scores[i] = scored{idx: i, sz: s.Clauses}
	}
	best1, best2 := 0, 1
	if scores[best2].sz < scores[best1].sz {
		best1, best2 = best2, best1
	}
	for i := 2; i < len(scores); i++ {
		switch {
		case scores[i].sz < scores[best1].sz:
			best2 = best1
			best1 = i
		case scores[i].sz < scores[best2].sz:
			best2 = i
		}
	}
	return best1, best2
}

func removeAndAppend(forest [][]*bddNode, i, j int, merged []*bddNode) [][]*bddNode {
	if i > j {
		i, j = j, i
	}
	out := make([][]*bddNode, 0, len(forest)-1)
	for k, chain := range forest {
		if k == i || k == j {
			continue
		}
		out = append(out, chain)
	}
	out = append(out, merged)
	return out
}
