package structenc

import (
	"github.com/atpg-sat/satcore/network"
	"github.com/atpg-sat/satcore/satif"
)

// SubEncoder is a CNF-generating component attached to a StructEngine,
// via AddSubenc. The engine invokes MakeCNF each time it materializes
// the sub-encoder's root at a time frame (at most once per frame), after
// its own good-machine variable for the root at that frame has been
// allocated; a sub-encoder must not be attached twice.
type SubEncoder interface {
	// Root returns the node this sub-encoder is rooted at, e.g. the FFR
	// root a BoolDiffEnc injects its flip at.
	Root() RootKey
	// MakeCNF materializes this sub-encoder's clauses into e's solver.
	MakeCNF(e *StructEngine)
}

// CondExtractor is the optional extraction surface a sub-encoder may
// expose: recovering, from a satisfying model, one sufficient
// AssignList per sensitized output of its cone. BoolDiffEnc implements
// it; StructEngine.ExtractSufficientCondition dispatches through it so
// the engine can offer root-level extraction without depending on any
// concrete sub-encoder type.
type CondExtractor interface {
	ExtractSufficientConditionAll(model satif.Model) ([]network.AssignList, error)
}

// RootKey identifies a sub-encoder's attachment point within a
// StructEngine: the node it is rooted at. Distinct sub-encoders may
// share a root only if they serve different purposes; StructEngine
// itself keys its sub-encoder registry by (root, kind) where kind is
// supplied by the sub-encoder's own type via a string tag, so that a
// BoolDiffEnc and some future sub-encoder type can coexist at the same
// root without collision.
type RootKey struct {
	Node network.NodeID
	Kind string
}
