// Package gstbackend implements native.Backend on top of GStreamer through
// go-gst. Builds without cgo get a stub whose Launch returns ErrCGORequired.
package gstbackend
