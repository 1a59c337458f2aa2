// Package store persists the stub server's events. The memory store is the
// default; the Postgres store exists so the stub can survive restarts when a
// DATABASE_URL is configured.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mpryce/ttedit/internal/model"
)

// EventStore is the persistence surface the stub server's handlers use.
// ReplaceSeries swaps a series' whole event set for the submitted one,
// assigning identifiers to events that have none, and returns the persisted
// set in order.
type EventStore interface {
	ListBySeries(ctx context.Context, seriesID string) ([]model.EventRecord, error)
	ReplaceSeries(ctx context.Context, seriesID string, events []model.EventRecord) ([]model.EventRecord, error)
}

// EventSQLStore handles database operations for events.
type EventSQLStore struct {
	db *sql.DB
}

// NewEventSQLStore creates a Postgres-backed event store.
func NewEventSQLStore(db *sql.DB) *EventSQLStore {
	return &EventSQLStore{db: db}
}

// EnsureSchema creates the events table when it does not exist yet.
func (s *EventSQLStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			series_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			event_type TEXT NOT NULL DEFAULT '',
			people TEXT NOT NULL DEFAULT '',
			term_week TEXT NOT NULL DEFAULT '',
			term_name TEXT NOT NULL DEFAULT '',
			day_of_week TEXT NOT NULL DEFAULT '',
			start_hour TEXT NOT NULL DEFAULT '',
			start_minute TEXT NOT NULL DEFAULT '',
			end_hour TEXT NOT NULL DEFAULT '',
			end_minute TEXT NOT NULL DEFAULT '',
			position INT NOT NULL DEFAULT 0
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	return nil
}

// ListBySeries retrieves a series' events in display order.
func (s *EventSQLStore) ListBySeries(ctx context.Context, seriesID string) ([]model.EventRecord, error) {
	query := `
		SELECT id, title, location, event_type, people, term_week,
		       term_name, day_of_week, start_hour, start_minute,
		       end_hour, end_minute
		FROM events
		WHERE series_id = $1
		ORDER BY position, id
	`

	rows, err := s.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for series %s: %w", seriesID, err)
	}
	defer rows.Close()

	var events []model.EventRecord
	for rows.Next() {
		var e model.EventRecord
		if err := rows.Scan(&e.ID, &e.Title, &e.Location, &e.Type, &e.People,
			&e.Week, &e.Term, &e.Day, &e.StartHour, &e.StartMinute,
			&e.EndHour, &e.EndMinute); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ReplaceSeries swaps the series' stored events for the submitted set inside
// one transaction.
func (s *EventSQLStore) ReplaceSeries(ctx context.Context, seriesID string, events []model.EventRecord) ([]model.EventRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM events WHERE series_id = $1", seriesID); err != nil {
		return nil, fmt.Errorf("failed to clear series %s: %w", seriesID, err)
	}

	insert := `
		INSERT INTO events (id, series_id, title, location, event_type,
			people, term_week, term_name, day_of_week, start_hour,
			start_minute, end_hour, end_minute, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	insertNew := `
		INSERT INTO events (series_id, title, location, event_type,
			people, term_week, term_name, day_of_week, start_hour,
			start_minute, end_hour, end_minute, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	saved := make([]model.EventRecord, 0, len(events))
	for pos, e := range events {
		if e.ID != 0 {
			if _, err := tx.ExecContext(ctx, insert, e.ID, seriesID, e.Title,
				e.Location, e.Type, e.People, e.Week, e.Term, e.Day,
				e.StartHour, e.StartMinute, e.EndHour, e.EndMinute, pos); err != nil {
				return nil, fmt.Errorf("failed to store event %d: %w", e.ID, err)
			}
		} else {
			if err := tx.QueryRowContext(ctx, insertNew, seriesID, e.Title,
				e.Location, e.Type, e.People, e.Week, e.Term, e.Day,
				e.StartHour, e.StartMinute, e.EndHour, e.EndMinute, pos).
				Scan(&e.ID); err != nil {
				return nil, fmt.Errorf("failed to store new event: %w", err)
			}
		}
		saved = append(saved, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit series %s: %w", seriesID, err)
	}
	return saved, nil
}
