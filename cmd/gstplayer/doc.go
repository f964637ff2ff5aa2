// Package main hosts the gstplayer CLI entrypoint and command graph.
//
// The Cobra-based command tree runs a GStreamer pipeline from configuration
// (play), computes property deltas between two trees (diff), reads back the
// journal of forwarded updates (history), and scaffolds configuration. It
// centralizes configuration resolution and logging setup so subcommands can
// focus on output instead of wiring.
package main
