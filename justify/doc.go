// Package justify implements the primary-input-only back-trace:
// given an AssignList over arbitrary internal nodes and a model already
// known to satisfy it, it produces an AssignList over PPIs alone that
// still implies the original one, under the good-machine CNF a
// structenc.StructEngine built.
package justify
