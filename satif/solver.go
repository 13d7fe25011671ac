package satif

// Lit is an opaque SAT literal handle. Concrete adapters (e.g. package
// ginisat) map it to their underlying solver's native literal type;
// callers never inspect its internal representation.
type Lit int32

// Not returns the complement of l by arithmetic negation, so it never
// needs to consult the solver. Adapters whose native literals negate
// differently (gini flips the low bit) convert on the way in.
func (l Lit) Not() Lit { return -l }

// TriState is a model value: True, False, or X (don't-care / unassigned,
// returned for a variable the solver never had to decide).
type TriState int

const (
	// X is the don't-care / unassigned model value.
	X TriState = iota
	// True is the satisfied-true model value.
	True
	// False is the satisfied-false model value.
	False
)

func (v TriState) String() string {
	switch v {
	case True:
		return "1"
	case False:
		return "0"
	default:
		return "x"
	}
}

// Model is a satisfying assignment, valid only until the next Solve call
// on the Solver that produced it.
type Model interface {
	// Value returns the model's truth value for l.
	Value(l Lit) TriState
}

// SolveResult is the three-valued outcome of a Solve call. Unknown
// covers the solver's own internal resource abort (conflict budget,
// timeout) as well as any condition the adapter cannot resolve to a
// definite answer. It is a recoverable, non-fatal outcome, not an
// error.
type SolveResult int

const (
	// Unknown means the solver could not determine satisfiability
	// within its resource budget.
	Unknown SolveResult = iota
	// Sat means the assumptions are satisfiable; call Model to inspect.
	Sat
	// Unsat means the assumptions are unsatisfiable.
	Unsat
)

func (r SolveResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Stats is a snapshot of a solver's cumulative internal counters, used
// to populate DtpgStats/CondGenStats without the caller needing to know
// the adapter's native stats shape.
type Stats struct {
	Restarts     int64
	Conflicts    int64
	Decisions    int64
	Propagations int64
}

// Add returns the fieldwise sum of s and other, for cumulative
// aggregation across solve calls.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Restarts:     s.Restarts + other.Restarts,
		Conflicts:    s.Conflicts + other.Conflicts,
		Decisions:    s.Decisions + other.Decisions,
		Propagations: s.Propagations + other.Propagations,
	}
}

// Max returns the fieldwise maximum of s and other, for max-preserving
// aggregation across solve calls.
func (s Stats) Max(other Stats) Stats {
	m := func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	}
	return Stats{
		Restarts:     m(s.Restarts, other.Restarts),
		Conflicts:    m(s.Conflicts, other.Conflicts),
		Decisions:    m(s.Decisions, other.Decisions),
		Propagations: m(s.Propagations, other.Propagations),
	}
}

// Solver is the abstract interface the reasoning engine consumes.
// Every method is expected to be cheap except Solve, the sole
// potentially-long blocking call.
type Solver interface {
	// NewVariable allocates a fresh variable and returns its positive
	// literal. decision hints whether the solver's branching heuristic
	// should treat it as a decision variable rather than an auxiliary
	// one; adapters may ignore the hint.
	NewVariable(decision bool) Lit

	// AddClause asserts the disjunction of the given literals.
	AddClause(lits ...Lit)

	// AddAndGate asserts out ↔ AND(inputs...).
	AddAndGate(out Lit, inputs ...Lit)
	// AddOrGate asserts out ↔ OR(inputs...).
	AddOrGate(out Lit, inputs ...Lit)
	// AddNorGate asserts out ↔ NOR(inputs...).
	AddNorGate(out Lit, inputs ...Lit)
	// AddXorGate asserts out ↔ XOR(inputs...), inputs interpreted as a
	// parity chain for more than two operands.
	AddXorGate(out Lit, inputs ...Lit)

	// Solve runs the solver under the given unit assumptions.
	Solve(assumptions []Lit) SolveResult

	// Model returns the model produced by the most recent Sat result.
	// Its return value is unspecified after any subsequent Solve call.
	Model() Model

	// CnfSize returns the number of clauses and literals added so far.
	CnfSize() (clauses, literals int)

	// GetStats returns a snapshot of the solver's cumulative counters.
	GetStats() Stats
}
