// Package eventstore persists fallback diagnostic events in Postgres
// so operators can query for ReDoS probing after the fact: a burst of
// events with large input lengths against one field is the signature.
package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	fv "github.com/fieldsafe/validator"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS fallback_events (
    id         BIGSERIAL PRIMARY KEY,
    occurred   TIMESTAMPTZ NOT NULL,
    field      TEXT NOT NULL,
    pattern    TEXT NOT NULL,
    input_len  INTEGER NOT NULL,
    reason     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS fallback_events_occurred_idx ON fallback_events (occurred);
CREATE INDEX IF NOT EXISTS fallback_events_field_idx ON fallback_events (field)`

// Store is an EventSink backed by Postgres.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// Open connects to Postgres and returns a Store. The connection pool
// is sized for a low-volume diagnostic write path.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		timeout: 5 * time.Second,
	}
}

// Migrate creates the events table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("migrate fallback_events: %w", err)
	}
	return nil
}

// Record implements fieldsafe.EventSink.
func (s *Store) Record(ev fv.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fallback_events (occurred, field, pattern, input_len, reason)
		 VALUES ($1, $2, $3, $4, $5)`,
		ev.Time, ev.Field, ev.Pattern, ev.InputLen, string(ev.Reason),
	)
	if err != nil {
		return fmt.Errorf("insert fallback event: %w", err)
	}
	return nil
}

// CountsByReason aggregates events since the given time, the query
// operators run when the fallback rate spikes.
func (s *Store) CountsByReason(ctx context.Context, since time.Time) (map[fv.FallbackReason]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT reason, COUNT(*) FROM fallback_events WHERE occurred >= $1 GROUP BY reason`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query fallback events: %w", err)
	}
	defer rows.Close()

	counts := make(map[fv.FallbackReason]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("scan fallback event row: %w", err)
		}
		counts[fv.FallbackReason(reason)] = n
	}
	return counts, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
