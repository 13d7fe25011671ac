package condlower

import "errors"

// ErrConstantZero is returned by CalcCNFSize (and the Tseitin encoders)
// when they reach an ExprConst0 node: constant 0 is a
// structural error" — a well-formed DetCond's cover never actually
// collapses to false, so reaching one here signals an internal
// invariant violation in the caller's DetCond, not a normal outcome.
var ErrConstantZero = errors.New("condlower: constant-0 expression is a structural error")

// ErrEmptyCoverOnDetected is returned when Lower is asked to lower a
// DetCond whose Type is condgen.Detected but whose Cover is empty — a
// kind 5, "logic-not-applicable", treated the same as an invalid
// argument.
var ErrEmptyCoverOnDetected = errors.New("condlower: Detected DetCond has an empty cover")

// ErrBDDEstimateOnly is returned by Lower if asked to materialize CNF
// for MethodBDD: bdd is legacy and size-estimation only —
// BDDEstimate is the entry point for that method, not Lower.
var ErrBDDEstimateOnly = errors.New("condlower: method \"bdd\" is size-estimation only; use BDDEstimate")

// ErrUnknownMethod is returned by Lower/CalcCNFSizeForMethod for a
// Method value outside the closed set of the "method" option.
var ErrUnknownMethod = errors.New("condlower: unknown method")
