// Package structenc implements the incremental structural CNF encoder
// (StructEngine) and its variable map (VarMap): given a set of
// requested root nodes, it lazily Tseitin-encodes the good-machine (and,
// through an attached SubEncoder, faulty-machine) behavior of their
// transitive fanin closure into a satif.Solver, caching which nodes have
// already been materialized at which time frame so repeated requests are
// O(1).
package structenc
