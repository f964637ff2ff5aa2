package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gstplayer/internal/propdiff"
)

// Kind values.
const (
	KindFull  = "full"
	KindDelta = "delta"
)

// Entry is one forwarded property document.
type Entry struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Kind       string    `json:"kind"`
	Pipeline   string    `json:"pipeline"`
	Payload    string    `json:"payload"`
	Changes    int       `json:"changes"`
}

// Filter narrows List results.
type Filter struct {
	SessionID string
	Limit     int
}

// Record stores entry. A blank session defaults to the Store's session, a
// zero timestamp to now, and the change count is derived from the payload.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	ctx = ensureContext(ctx)

	switch entry.Kind {
	case KindFull, KindDelta:
	default:
		return Entry{}, fmt.Errorf("record entry: unknown kind %q", entry.Kind)
	}
	tree, err := propdiff.ParseJSON([]byte(entry.Payload))
	if err != nil {
		return Entry{}, fmt.Errorf("record entry: %w", err)
	}
	entry.Changes = len(propdiff.Flatten(tree))
	if strings.TrimSpace(entry.SessionID) == "" {
		entry.SessionID = s.session
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}
	entry.RecordedAt = entry.RecordedAt.UTC()

	var res sql.Result
	err = retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO entries (session_id, recorded_at, kind, pipeline, payload, changes)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			entry.SessionID,
			entry.RecordedAt.Format(time.RFC3339Nano),
			entry.Kind,
			entry.Pipeline,
			entry.Payload,
			entry.Changes,
		)
		return execErr
	})
	if err != nil {
		return Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("insert entry id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	ctx = ensureContext(ctx)

	query := `SELECT id, session_id, recorded_at, kind, pipeline, payload, changes FROM entries`
	var args []any
	if filter.SessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, filter.SessionID)
	}
	query += ` ORDER BY id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			recordedAt string
		)
		if err := rows.Scan(&entry.ID, &entry.SessionID, &recordedAt, &entry.Kind, &entry.Pipeline, &entry.Payload, &entry.Changes); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if entry.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Prune keeps the newest keep entries and deletes the rest. keep <= 0 keeps
// everything. It returns the number of deleted rows.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	ctx = ensureContext(ctx)
	if keep <= 0 {
		return 0, nil
	}

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`DELETE FROM entries WHERE id NOT IN (SELECT id FROM entries ORDER BY id DESC LIMIT ?)`,
			keep,
		)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("prune entries: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return removed, nil
}
