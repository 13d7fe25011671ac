// Package satif defines the abstract interface the reasoning engine uses
// to talk to a Boolean satisfiability solver: variable allocation, clause
// and convenience gate-clause addition, solving under assumptions, and
// model/statistics extraction. The third-party solver itself is an
// external collaborator; this package owns only the
// interface, never an implementation. See package ginisat for the
// concrete adapter over github.com/irifrance/gini.
package satif
