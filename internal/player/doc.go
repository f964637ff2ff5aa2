// Package player binds caller-owned props to a native player.
//
// Callers hand the binding a complete Props value on every change. The
// binding diffs the property tree against the previous props with
// propdiff.Diff and forwards only the delta, encoded as JSON, to the native
// side. A new pipeline description resets the pipeline, so the full tree is
// forwarded instead. Native events come back through the Handlers callbacks
// and drive the overlay fade.
package player
