// Package logs reads the player log file for the CLI.
//
// Last returns the final lines with bounded memory, Since reads complete
// lines appended after an offset, and Follow polls for new lines until its
// context ends. A file that shrinks below the remembered offset is read
// again from the start.
package logs
