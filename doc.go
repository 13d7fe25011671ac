// Package satcore ties the reasoning-engine packages together for a
// caller that already has a network.Network and a SAT-solver factory:
// typed configuration (Options), the shared error taxonomy
// (Error/Kind), and convenience constructors for the condition
// generator, the per-fault test-generation driver, and the
// condition-to-CNF lowering pipeline.
//
// The heavy lifting lives in the sub-packages: network (circuit data
// model), satif/ginisat (solver abstraction and adapter), structenc
// (incremental structural CNF), booldiff (Boolean-difference cones),
// extract (sufficient-condition extraction), justify (PPI back-trace),
// condgen (per-FFR condition enumeration), condlower (cover-to-CNF
// lowering), and dtpg (per-fault driver, test vectors, statistics).
package satcore
