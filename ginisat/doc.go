// Package ginisat adapts github.com/irifrance/gini, a CDCL SAT solver,
// to the satif.Solver interface. It is the one place in this module that
// imports gini directly; every other package reasons purely in terms of
// satif.Lit and never sees a gini type.
package ginisat
