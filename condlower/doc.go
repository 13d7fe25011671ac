// Package condlower implements condition-to-CNF lowering: turning
// a list of condgen.DetConds into per-DetCond SAT assumption lists, by
// one of four Tseitin-style methods (naive/cover/factor/aig) plus a
// legacy BDD size-only estimator, and the method-agnostic calc_cnf_size
// estimator used to compare methods before committing clauses.
package condlower
