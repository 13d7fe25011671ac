package condgen

import "github.com/atpg-sat/satcore/network"

// DetCondType classifies a DetCond's outcome.
type DetCondType int

const (
	// Undetected means the FFR's propagation was outright Unsat: the
	// fault effect cannot reach any output of the cone under any input.
	Undetected DetCondType = iota
	// Detected means the whole-FFR enumeration found a complete cover
	// directly, without a per-output restart.
	Detected
	// PartialDetected means the per-output restart ran and at least one
	// output produced a complete cover; OutputList names the outputs
	// that aborted and is empty when every output completed. See
	// PerOutput/OutputList.
	PartialDetected
	// Overflow means no output produced a complete cover before the
	// solver aborted; OutputList names every output still residual.
	Overflow
)

// String renders a DetCondType for diagnostics.
func (t DetCondType) String() string {
	switch t {
	case Undetected:
		return "undetected"
	case Detected:
		return "detected"
	case PartialDetected:
		return "partial-detected"
	case Overflow:
		return "overflow"
	default:
		return "?"
	}
}

// CondData is one output's complete cover, produced by the per-output
// restart after a whole-FFR enumeration runs out of budget.
type CondData struct {
	Output    network.NodeID
	Mandatory network.AssignList
	Cover     []network.AssignList
}

// DetCond is the result of running CondGen on one FFR. Detected
// carries a non-empty cover and an empty output list; Overflow an
// empty cover and a non-empty output list; Undetected both empty.
//
// When Type == Detected, the whole-FFR enumeration succeeded directly:
// Mandatory/Cover carry the single whole-FFR result and PerOutput is
// empty. When Type == PartialDetected (the per-output restart),
// PerOutput carries one CondData per output that completed, and
// Mandatory/Cover are left empty — callers needing a single cube set
// should consult PerOutput instead.
type DetCond struct {
	Type      DetCondType
	Mandatory network.AssignList
	Cover     []network.AssignList
	PerOutput []CondData
	// OutputList names the cone outputs still unresolved: every cone
	// output when the whole-FFR solve itself aborted, the outputs whose
	// per-output pass aborted after a restart (PartialDetected or
	// Overflow), and none for Detected/Undetected.
	OutputList []network.NodeID
}
