// Package network defines the read-only data model that the SAT-encoded
// reasoning engine borrows: nodes of a combinational (plus flip-flop)
// circuit DAG, their partition into fanout-free regions and maximal
// fanout-free cones, the fault representation, and the two-valued
// assignment types used to describe partial states of the circuit.
//
// Everything in this package has process lifetime owned by whatever
// constructs a Network (a netlist loader, in the full system — out of
// scope here); encoders and other consumers only ever hold a read-only
// reference to a Network for the duration of their work.
package network
