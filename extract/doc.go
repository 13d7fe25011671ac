// Package extract implements the sufficient-condition extractor of
// given a SAT model in which a BoolDiffEnc's propagation literal
// is true, it recovers, without any further SAT call, a small
// AssignList whose conjunction is sufficient for the fault's effect to
// reach a given output.
package extract
