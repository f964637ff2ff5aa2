package gstbackend

import "errors"

// ErrCGORequired is returned when GStreamer is used in a build without cgo.
var ErrCGORequired = errors.New("GStreamer support requires CGO")
