package postgres

import (
	"context"
	"database/sql"

	"reviewdesk/internal/model"
	"reviewdesk/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

const activityColumns = `id, action, filename, outcome, message, request_id, created_at`

// Record inserts a journal row and returns the stored record.
func (r *ActivityPostgres) Record(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	const q = `
		INSERT INTO workflow_activity (id, action, filename, outcome, message, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + activityColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		string(a.Action),
		a.Filename,
		a.Outcome,
		a.Message,
		a.RequestID,
		a.CreatedAt,
	)
	out, err := scanActivity(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Recent returns the newest journal rows.
func (r *ActivityPostgres) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM workflow_activity
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.query(ctx, q, limit)
}

// RecentForFile returns the newest journal rows for one filename.
func (r *ActivityPostgres) RecentForFile(ctx context.Context, filename string, limit int) ([]model.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM workflow_activity
		WHERE filename = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	return r.query(ctx, q, filename, limit)
}

func (r *ActivityPostgres) query(ctx context.Context, q string, args ...any) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (model.Activity, error) {
	var (
		a      model.Activity
		action string
	)
	if err := s.Scan(
		&a.ID,
		&action,
		&a.Filename,
		&a.Outcome,
		&a.Message,
		&a.RequestID,
		&a.CreatedAt,
	); err != nil {
		return model.Activity{}, err
	}
	a.Action = model.Action(action)
	return a, nil
}
