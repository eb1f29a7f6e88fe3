// Package journal records the actions applied during one session.
//
// The journal lives in an in-memory sqlite database and disappears with the
// process. It is a history view, not a persistence or undo mechanism.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shoplist/internal/model"

	_ "modernc.org/sqlite"
)

// Journal is safe for concurrent use; database/sql serializes access to the
// single in-memory connection.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*Journal)

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// Open creates an empty in-memory journal.
func Open(ctx context.Context, opts ...Option) (*Journal, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every new connection to ":memory:" is a fresh database; pin to one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migrate: %w", err)
	}
	j := &Journal{db: db, now: time.Now}
	for _, o := range opts {
		o(j)
	}
	return j, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			item_index INTEGER NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one event and returns it with its ID and timestamp filled in.
func (j *Journal) Record(ctx context.Context, typ string, index int, payload map[string]any) (model.Event, error) {
	if j == nil || j.db == nil {
		return model.Event{}, errors.New("journal: not open")
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return model.Event{}, errors.New("journal: empty event type")
	}
	if payload == nil {
		payload = map[string]any{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return model.Event{}, fmt.Errorf("journal: encode payload: %w", err)
	}
	ev := model.Event{
		ID:      uuid.NewString(),
		TS:      j.now().UTC(),
		Type:    typ,
		Index:   index,
		Payload: payload,
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO events(event_id, type, item_index, payload_json, issued_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		ev.ID, ev.Type, ev.Index, string(b), ev.TS.UnixMilli(),
	)
	if err != nil {
		return model.Event{}, fmt.Errorf("journal: insert: %w", err)
	}
	return ev, nil
}

// List returns events oldest first. A positive limit keeps only the newest
// limit events (still oldest first).
func (j *Journal) List(ctx context.Context, limit int) ([]model.Event, error) {
	if j == nil || j.db == nil {
		return nil, errors.New("journal: not open")
	}
	q := `SELECT event_id, type, item_index, payload_json, issued_at_unixms FROM events ORDER BY seq ASC`
	args := []any{}
	if limit > 0 {
		q = `SELECT event_id, type, item_index, payload_json, issued_at_unixms FROM (
			SELECT * FROM events ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var (
			ev      model.Event
			payload string
			ms      int64
		)
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.Index, &payload, &ms); err != nil {
			return nil, err
		}
		var p map[string]any
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("journal: decode payload for %s: %w", ev.ID, err)
		}
		if len(p) > 0 {
			ev.Payload = p
		}
		ev.TS = time.UnixMilli(ms).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Count returns the number of recorded events.
func (j *Journal) Count(ctx context.Context) (int, error) {
	if j == nil || j.db == nil {
		return 0, errors.New("journal: not open")
	}
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}
