package network

import (
	"fmt"
	"sort"
)

// Assign is a single two-valued assignment to a (node, time-frame) pair,
// The zero value is not a valid Assign; always construct one
// through a literal composite or the Node/Frame/Value fields directly.
type Assign struct {
	Node  NodeID
	Frame Frame
	Value bool
}

// Not returns the Assign with the same (node, frame) and the opposite
// value.
func (a Assign) Not() Assign {
	return Assign{Node: a.Node, Frame: a.Frame, Value: !a.Value}
}

// String renders an Assign for diagnostics, e.g. "n3@cur=1".
func (a Assign) String() string {
	v := 0
	if a.Value {
		v = 1
	}
	return fmt.Sprintf("n%d@%s=%d", a.Node, a.Frame, v)
}

// key identifies the (node, frame) pair an Assign targets, ignoring its
// value; used to detect conflicting assignments within an AssignList.
func (a Assign) key() int64 {
	return int64(a.Node)*2 + int64(a.Frame)
}

// AssignList is an ordered list of Assigns interpreted as a conjunction
// (a "cube" in the SAT/logic-synthesis sense). Construction
// helpers in this file enforce the "no conflicting duplicate" invariant;
// once built it behaves as a plain slice and may be copied by value.
type AssignList []Assign

// NewAssignList builds an AssignList from the given assigns, returning
// ErrConflictingAssign if the same (node, frame) pair appears twice with
// different values. Assigns appearing twice with the same value are
// deduplicated, preserving first occurrence order.
func NewAssignList(assigns ...Assign) (AssignList, error) {
	var out AssignList
	seen := make(map[int64]bool)
	for _, a := range assigns {
		if v, ok := seen[a.key()]; ok {
			if v != a.Value {
				return nil, fmt.Errorf("%w: node %d frame %s", ErrConflictingAssign, a.Node, a.Frame)
			}
			continue
		}
		seen[a.key()] = a.Value
		out = append(out, a)
	}
	return out, nil
}

// Add returns a new AssignList with a appended, or ErrConflictingAssign
// if a conflicts with an existing entry. al is left unmodified.
func (al AssignList) Add(a Assign) (AssignList, error) {
	for _, cur := range al {
		if cur.key() == a.key() {
			if cur.Value == a.Value {
				return al, nil
			}
			return nil, fmt.Errorf("%w: node %d frame %s", ErrConflictingAssign, a.Node, a.Frame)
		}
	}
	out := make(AssignList, len(al), len(al)+1)
	copy(out, al)
	return append(out, a), nil
}

// Contains reports whether al already carries an assignment for
// (node, frame), returning its value and true if so.
func (al AssignList) Contains(node NodeID, frame Frame) (bool, bool) {
	for _, a := range al {
		if a.Node == node && a.Frame == frame {
			return a.Value, true
		}
	}
	return false, false
}

// Diff returns a new AssignList containing the elements of al whose
// (node, frame) key does not appear in other, preserving al's order.
// CondGen uses this to subtract a mandatory condition from a
// sufficient one.
func (al AssignList) Diff(other AssignList) AssignList {
	excl := make(map[int64]bool, len(other))
	for _, a := range other {
		excl[a.key()] = true
	}
	var out AssignList
	for _, a := range al {
		if !excl[a.key()] {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a shallow copy of al, safe to append to independently.
func (al AssignList) Clone() AssignList {
	out := make(AssignList, len(al))
	copy(out, al)
	return out
}

// Sorted returns a copy of al ordered by (node, frame), useful for
// deterministic comparisons in tests.
func (al AssignList) Sorted() AssignList {
	out := al.Clone()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Node != out[j].Node {
			return out[i].Node < out[j].Node
		}
		return out[i].Frame < out[j].Frame
	})
	return out
}
