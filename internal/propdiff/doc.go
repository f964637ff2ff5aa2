// Package propdiff computes incremental property updates between two
// nested configuration trees.
//
// A Tree maps element or property names to scalars, sequences, or nested
// trees. Diff walks the keys of the previously applied tree and reports
// only what changed, so the player binding can forward a sparse update to
// the native pipeline instead of re-applying every property.
//
// The comparison rules are deliberately loose: sequences compare as sets
// (order and duplicates are ignored), keys that only exist in the current
// tree are never reported, and mismatched shapes are compared on a
// best-effort basis without validation. Scalar and sequence keys report the
// current value while tree keys report a nested delta.
//
// Diff never mutates its inputs and holds no state, so it is safe to call
// from any goroutine as long as the trees are not being written
// concurrently.
package propdiff
