package extract

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// Extractor implements the two-phase DFS extraction over a fault cone:
// mark the sensitized nodes, then back-trace from each sensitized
// output recording the side-input values the path depends on.
type Extractor struct {
	policy ChoicePolicy
}

// New returns an Extractor using policy to break ties among masking side
// inputs. A nil policy defaults to LexFirst.
func New(policy ChoicePolicy) *Extractor {
	if policy == nil {
		policy = LexFirst
	}
	return &Extractor{policy: policy}
}

// state carries the per-call working data for one extraction pass: the
// cone, the model its good/fault values are read from, and the
// accumulated result (deduplicated by the AssignList construction
// helpers).
type state struct {
	cone   Cone
	model  satif.Model
	result network.AssignList
}

// Extract produces a sufficient AssignList for output to be sensitized,
// given a model in which the cone's propagation holds. It corresponds
// to BoolDiffEnc.extract_sufficient_condition(output_index) — a
// single-output extraction.
func (ex *Extractor) Extract(cone Cone, model satif.Model, output network.NodeID) (network.AssignList, error) {
	st := &state{cone: cone, model: model}
	if err := ex.backtrace(st, output); err != nil {
		return nil, err
	}
	return st.result, nil
}

// ExtractAll produces one sufficient AssignList per output in outputs
// that is actually sensitized, ORed together informally by returning
// them as a list for the caller to combine; it corresponds to
// BoolDiffEnc.extract_sufficient_condition() [all outputs].
func (ex *Extractor) ExtractAll(cone Cone, model satif.Model, outputs []network.NodeID) ([]network.AssignList, error) {
	var out []network.AssignList
	for _, o := range outputs {
		sensitized, err := ex.sensitized(cone, model, o)
		if err != nil {
			return nil, err
		}
		if !sensitized {
			continue
		}
		al, err := ex.Extract(cone, model, o)
		if err != nil {
			return nil, err
		}
		out = append(out, al)
	}
	return out, nil
}

func (ex *Extractor) sensitized(cone Cone, model satif.Model, n network.NodeID) (bool, error) {
	g, err := boolValue(model, cone.GoodLit(n))
	if err != nil {
		return false, err
	}
	f, err := boolValue(model, cone.FaultLit(n))
	if err != nil {
		return false, err
	}
	return g != f, nil
}

func boolValue(model satif.Model, l satif.Lit) (bool, error) {
	switch model.Value(l) {
	case satif.True:
		return true, nil
	case satif.False:
		return false, nil
	default:
		return false, ErrUndeterminedLiteral
	}
}

// backtrace walks backward from a sensitized node through sensitized
// nodes, recording required side-input assignments.
// It runs over an explicit worklist rather than the call stack, marking
// each node as visited the moment it is popped: a reconvergent node
// reachable from two sensitized paths is expanded at most once.
// Traversal stops at the cone's root: the fault's own excitation
// condition is the fault's business, not the extractor's.
func (ex *Extractor) backtrace(st *state, start network.NodeID) error {
	marks := make(map[network.NodeID]bool)
	queue := []network.NodeID{start}

	for len(queue) > 0 {
		n := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if marks[n] {
			continue
		}
		marks[n] = true

		if n == st.cone.RootNode() {
			continue
		}
		node := st.cone.Network().Node(n)

		if node.Kind() == network.KindPPO {
			if err := ex.visitFanin(st, &queue, node.FaninAt(0)); err != nil {
				return err
			}
			continue
		}

		switch node.Primitive() {
		case network.PrimBUF, network.PrimNOT:
			if err := ex.visitFanin(st, &queue, node.FaninAt(0)); err != nil {
				return err
			}
		case network.PrimAND, network.PrimNAND, network.PrimOR, network.PrimNOR:
			if err := ex.visitControlling(st, &queue, node); err != nil {
				return err
			}
		case network.PrimXOR, network.PrimXNOR:
			if err := ex.visitXor(st, &queue, node); err != nil {
				return err
			}
		}
	}
	return nil
}

// visitFanin enqueues fi for further traversal if it is itself sensitized
// and in the cone, otherwise records it directly (single-fanin BUF/NOT/
// PPO gates have no side inputs beyond their one fanin).
func (ex *Extractor) visitFanin(st *state, queue *[]network.NodeID, fi network.NodeID) error {
	if st.cone.InCone(fi) {
		sens, err := ex.sensitized(st.cone, st.model, fi)
		if err != nil {
			return err
		}
		if sens {
			*queue = append(*queue, fi)
			return nil
		}
	}
	return ex.record(st, fi)
}

// visitControlling handles AND/NAND/OR/NOR gates: every sensitized fanin
// is enqueued; every non-sensitized fanin at the gate's non-controlling
// value is a required side input; non-sensitized fanins at the
// controlling value are masking candidates, of which exactly one (chosen
// by policy) is recorded.
func (ex *Extractor) visitControlling(st *state, queue *[]network.NodeID, node *network.Node) error {
	ctrlIn, _, err := node.Primitive().ControllingValue()
	if err != nil {
		return err
	}

	var masking []network.NodeID
	for _, fi := range node.Fanin() {
		if st.cone.InCone(fi) {
			sens, err := ex.sensitized(st.cone, st.model, fi)
			if err != nil {
				return err
			}
			if sens {
				*queue = append(*queue, fi)
				continue
			}
		}
		gv, err := boolValue(st.model, st.cone.GoodLit(fi))
		if err != nil {
			return err
		}
		if gv == ctrlIn {
			masking = append(masking, fi)
		} else {
			if err := ex.record(st, fi); err != nil {
				return err
			}
		}
	}
	if len(masking) > 0 {
		chosen := ex.policy(masking)
		return ex.record(st, chosen)
	}
	return nil
}

// visitXor handles XOR/XNOR gates: every sensitized fanin is enqueued;
// every non-sensitized fanin's value matters and is always recorded,
// since there is no controlling/non-controlling distinction for XOR.
func (ex *Extractor) visitXor(st *state, queue *[]network.NodeID, node *network.Node) error {
	for _, fi := range node.Fanin() {
		if st.cone.InCone(fi) {
			sens, err := ex.sensitized(st.cone, st.model, fi)
			if err != nil {
				return err
			}
			if sens {
				*queue = append(*queue, fi)
				continue
			}
		}
		if err := ex.record(st, fi); err != nil {
			return err
		}
	}
	return nil
}

// record appends Assign(n, cur, gval(n)) to the result, deduplicating
// against anything already recorded.
func (ex *Extractor) record(st *state, n network.NodeID) error {
	gv, err := boolValue(st.model, st.cone.GoodLit(n))
	if err != nil {
		return err
	}
	out, err := st.result.Add(network.Assign{Node: n, Frame: network.FrameCur, Value: gv})
	if err != nil {
		return err
	}
	st.result = out
	return nil
}
