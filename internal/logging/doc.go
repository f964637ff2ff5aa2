// Package logging builds the slog loggers used by gstplayer.
//
// Two formats are supported: a console line format that lifts the component
// and debug tag into a readable prefix, and JSON with short keys. Context
// helpers carry the play session id and debug tag so every record of one run
// can be correlated.
package logging
