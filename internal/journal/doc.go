// Package journal persists every property document the player forwards to
// the native pipeline in a SQLite database.
//
// Each Store belongs to one player session (a random UUID). Entries record
// whether the document was a full reset or a delta, the pipeline it targeted,
// the JSON payload, and how many element properties it touched. The CLI's
// history command reads the journal back; Prune enforces retention.
package journal
