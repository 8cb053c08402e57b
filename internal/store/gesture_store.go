package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/handstream/handstream/internal/domain"
)

// CreateGestureBinding registers a gesture name → action mapping.
func (s *PostgresStore) CreateGestureBinding(ctx context.Context, name, action string) (*domain.GestureBinding, error) {
	var b domain.GestureBinding
	err := s.pool.QueryRow(ctx, `
		INSERT INTO gesture_bindings (name, action)
		VALUES ($1, $2)
		RETURNING id, name, action, created_at
	`, name, action).Scan(&b.ID, &b.Name, &b.Action, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting gesture binding: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) ListGestureBindings(ctx context.Context) ([]domain.GestureBinding, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, action, created_at
		FROM gesture_bindings ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying gesture bindings: %w", err)
	}
	defer rows.Close()

	var bindings []domain.GestureBinding
	for rows.Next() {
		var b domain.GestureBinding
		if err := rows.Scan(&b.ID, &b.Name, &b.Action, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning gesture binding: %w", err)
		}
		bindings = append(bindings, b)
	}

	if bindings == nil {
		bindings = []domain.GestureBinding{}
	}

	return bindings, nil
}

// DeleteGestureBinding removes a binding; returns false when the id is
// unknown.
func (s *PostgresStore) DeleteGestureBinding(ctx context.Context, id int) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM gesture_bindings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting gesture binding: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RecordGestureEvent logs one complex-gesture transition observed on the
// stream.
func (s *PostgresStore) RecordGestureEvent(ctx context.Context, gesture string, occurredAtNs int64) (*domain.GestureEvent, error) {
	var e domain.GestureEvent
	err := s.pool.QueryRow(ctx, `
		INSERT INTO gesture_events (gesture, occurred_at)
		VALUES ($1, to_timestamp($2::double precision / 1e9))
		RETURNING id, gesture, occurred_at, created_at
	`, gesture, occurredAtNs).Scan(&e.ID, &e.Gesture, &e.OccurredAt, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting gesture event: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) ListGestureEvents(ctx context.Context, limit int) ([]domain.GestureEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, gesture, occurred_at, created_at
		FROM gesture_events ORDER BY occurred_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying gesture events: %w", err)
	}
	defer rows.Close()

	var events []domain.GestureEvent
	for rows.Next() {
		var e domain.GestureEvent
		if err := rows.Scan(&e.ID, &e.Gesture, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning gesture event: %w", err)
		}
		events = append(events, e)
	}

	if events == nil {
		events = []domain.GestureEvent{}
	}

	return events, nil
}

// GetGestureBinding looks a binding up by gesture name.
func (s *PostgresStore) GetGestureBinding(ctx context.Context, name string) (*domain.GestureBinding, error) {
	var b domain.GestureBinding
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, action, created_at
		FROM gesture_bindings WHERE name = $1
	`, name).Scan(&b.ID, &b.Name, &b.Action, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying gesture binding: %w", err)
	}
	return &b, nil
}
