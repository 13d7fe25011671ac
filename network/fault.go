package network

// FaultID is a 0-based, Network-unique fault identifier.
type FaultID int

// FaultModel distinguishes the two fault models the ATPG core reasons
// about: a permanent stuck value, or a failure to transition within a
// clock cycle (requiring two-frame reasoning).
type FaultModel int

const (
	// StuckAt is the single-stuck-at fault model.
	StuckAt FaultModel = iota
	// TransitionDelay is the two-frame slow-to-rise/slow-to-fall model.
	TransitionDelay
)

// FaultVariantKind distinguishes where, relative to a gate, a fault's
// excitation condition is defined.
type FaultVariantKind int

const (
	// VariantStem is a fault at a gate's own output (the "stem" of its
	// fanout tree).
	VariantStem FaultVariantKind = iota
	// VariantBranch is a fault at one specific input pin of a gate.
	VariantBranch
	// VariantGateExhaustive covers a fault defined by an explicit input
	// vector template over the gate's inputs (used for gate-exhaustive
	// fault models on multi-input primitives).
	VariantGateExhaustive
)

// FaultVariant describes where a Fault is rooted and, for branch faults,
// which input pin.
type FaultVariant struct {
	Kind FaultVariantKind

	// InputPos is the faulty gate's input pin index; meaningful only
	// when Kind == VariantBranch.
	InputPos int
	// Line is the node id whose value the fault's excitation condition
	// is stated on: the gate's own output node for VariantStem, and the
	// fanin node feeding the faulty pin for VariantBranch (a fanout
	// branch can be faulted independently of its stem).
	Line NodeID
	// StuckValue is the permanently-held value. Under TransitionDelay it
	// is the value the line is stuck at in the current frame, i.e. the
	// one the line fails to transition *out of* (false for slow-to-rise,
	// true for slow-to-fall).
	StuckValue bool
	// InputVector is the gate's input pattern template; meaningful only
	// when Kind == VariantGateExhaustive.
	InputVector []bool
}

// Fault is a single representative (or non-representative) fault
// instance.
type Fault struct {
	id      FaultID
	target  NodeID
	variant FaultVariant
	model   FaultModel
	repOf   FaultID // fixed point (repOf == id) if this fault is itself representative

	ffrRoot     NodeID
	hasFFRRoot  bool
	ffrPropCond AssignList
}

// NewFault constructs a Fault that is its own representative.
func NewFault(id FaultID, target NodeID, variant FaultVariant, model FaultModel) *Fault {
	return &Fault{id: id, target: target, variant: variant, model: model, repOf: id}
}

// NewStemFault constructs a stuck-at (or transition) fault at a gate's
// own output line.
func NewStemFault(id FaultID, target NodeID, stuckValue bool, model FaultModel) *Fault {
	v := FaultVariant{Kind: VariantStem, Line: target, StuckValue: stuckValue}
	return NewFault(id, target, v, model)
}

// NewBranchFault constructs a stuck-at (or transition) fault on a gate's
// inputPos'th fanin branch; line is the fanin node id feeding that pin.
func NewBranchFault(id FaultID, target NodeID, inputPos int, line NodeID, stuckValue bool, model FaultModel) *Fault {
	v := FaultVariant{Kind: VariantBranch, InputPos: inputPos, Line: line, StuckValue: stuckValue}
	return NewFault(id, target, v, model)
}

// ID returns the fault's identifier.
func (f *Fault) ID() FaultID { return f.id }

// TargetNode returns the node the fault is defined on.
func (f *Fault) TargetNode() NodeID { return f.target }

// Variant returns where (stem/branch/gate-exhaustive) the fault sits.
func (f *Fault) Variant() FaultVariant { return f.variant }

// Model returns the fault model (stuck-at or transition-delay).
func (f *Fault) Model() FaultModel { return f.model }

// RepresentativeOf returns the id of the fault this one is equivalent
// to. A fault that is its own representative returns its own id.
func (f *Fault) RepresentativeOf() FaultID { return f.repOf }

// IsRepresentative reports whether this fault is its own fixed point,
// i.e. the canonical member of its equivalence class.
func (f *Fault) IsRepresentative() bool { return f.repOf == f.id }

// FFRRoot returns the node id of the FFR that contains this fault's
// line, and true if that has been established by the owning Network.
func (f *Fault) FFRRoot() (NodeID, bool) { return f.ffrRoot, f.hasFFRRoot }

// FFRPropagateCondition returns the AssignList (if any) that the owning
// Network has recorded as necessary, independent of the excitation
// condition, for this fault's effect to leave its FFR — e.g. side-input
// values on reconvergent branches within the FFR that every detecting
// test must satisfy.
func (f *Fault) FFRPropagateCondition() AssignList { return f.ffrPropCond }

// setFFRRoot and setFFRPropagateCondition are used only by the Network
// builder while partitioning faults into FFRs.
func (f *Fault) setFFRRoot(root NodeID) { f.ffrRoot, f.hasFFRRoot = root, true }
func (f *Fault) setFFRPropagateCondition(c AssignList) { f.ffrPropCond = c }

// SetRepresentative records that this fault is equivalent to (and
// represented by) another fault. Used only by the fault-collapsing step
// that builds the equivalence classes; out of scope here beyond storage.
func (f *Fault) SetRepresentative(rep FaultID) { f.repOf = rep }

// ExcitationCondition returns the AssignList that must hold for the
// fault to be excited. Under StuckAt that is the target line driven to the opposite of its
// stuck value at the current frame. Under TransitionDelay the line must
// additionally sit at the stuck value in the previous frame, so the
// launched transition is the one the fault fails to complete (a
// slow-to-rise fault is modeled with StuckValue=false: 0 at frame 0,
// 1 wanted at frame 1, the faulty machine holding 0).
func (f *Fault) ExcitationCondition() AssignList {
	switch f.variant.Kind {
	case VariantStem, VariantBranch:
		cur := Assign{Node: f.variant.Line, Frame: FrameCur, Value: !f.variant.StuckValue}
		if f.model == TransitionDelay {
			return AssignList{
				{Node: f.variant.Line, Frame: FramePrev, Value: f.variant.StuckValue},
				cur,
			}
		}
		return AssignList{cur}
	default:
		return AssignList{}
	}
}
