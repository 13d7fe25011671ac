// Package dtpg is the per-fault test-generation driver. For each
// representative fault it wires a StructEngine, a fault-specific
// BoolDiffEnc, the sufficient-condition extractor, and the justifier
// into one solve-extract-justify pass, producing a Result: a detecting
// TestVector, a proof of untestability, or an abort indication.
//
// The packed three-valued TestVector representation lives here too; it
// is the interchange format the external fault simulator consumes.
package dtpg
