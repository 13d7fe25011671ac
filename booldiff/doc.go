// Package booldiff implements BoolDiffEnc, the Boolean-difference
// sub-encoder: given a root node, it lazily builds the
// faulty-machine copy of the root's transitive fanout cone, asserts the
// injected flip at the root, and exposes propagation literals (global
// and per-output) plus a sufficient-condition extractor operating
// directly on a SAT model, without any further solver call.
package booldiff
