package satcore

import "fmt"

// Kind classifies the error-shaped abnormal outcomes this module
// produces. Solver Unsat and Unknown are deliberately absent: those
// are values (satif.SolveResult, condgen.DetCondType), not errors.
type Kind int

const (
	// KindInvalidArgument is a caller contract violation: a conflicting
	// duplicate assignment, an option of the wrong type, an
	// out-of-range index. Safe to abort the current work unit.
	KindInvalidArgument Kind = iota
	// KindImpossibleState is a broken internal invariant. The checks that
	// detect one panic with a plain string or error; no worker recovers
	// the panic, so it is not confined to the current work unit.
	KindImpossibleState
	// KindLogicNotApplicable is a request that is well-formed but
	// meaningless for the value it was made against, e.g. lowering a
	// nominally-Detected condition whose cover is empty. Treated the
	// same as KindInvalidArgument.
	KindLogicNotApplicable
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid-argument"
	case KindImpossibleState:
		return "impossible-state"
	case KindLogicNotApplicable:
		return "logic-not-applicable"
	default:
		return "?"
	}
}

// Error is the single result-error type every public call in this
// module surfaces. It wraps the producing package's sentinel
// (reachable through errors.Is/errors.As via Unwrap) and tags it with a
// Kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err as an Error of the given kind, naming the failing
// operation.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("satcore: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("satcore: %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// ImpossiblePanic is a typed payload for a KindImpossibleState panic.
// Nothing in this module panics with it or recovers it.
type ImpossiblePanic struct {
	Op  string
	Msg string
}

func (p ImpossiblePanic) String() string {
	return fmt.Sprintf("satcore: %s: impossible state: %s", p.Op, p.Msg)
}
