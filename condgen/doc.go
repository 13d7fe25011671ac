// Package condgen implements the per-FFR condition-enumeration driver of
// given one FFR root and a loop bound, it produces a DetCond
// describing how that FFR's fault effect propagates to the circuit's
// outputs, and a fixed-worker manager that runs this over every FFR in a
// Network concurrently.
package condgen
