// Package native drives a media pipeline on behalf of the player binding.
//
// A Player owns at most one launched pipeline at a time. It relaunches the
// pipeline when the parse-launch description changes, re-applies the
// desired state after every launch, and applies sparse JSON property
// documents to named elements. A single goroutine drains the pipeline bus
// and translates messages into Events callbacks.
//
// The media framework itself sits behind the Backend interface; the
// GStreamer implementation lives in internal/gstbackend and tests use the
// in-memory backend from internal/testsupport.
package native
