package repository

import (
	"context"

	"reviewdesk/internal/model"
)

// ActivityRepository persists the console's action journal using SQL queries only.
// Persistence only; the desk decides what gets recorded.
type ActivityRepository interface {
	// Record inserts a journal entry and returns the stored row.
	Record(ctx context.Context, a *model.Activity) (*model.Activity, error)

	// Recent returns the newest entries first, at most limit rows.
	Recent(ctx context.Context, limit int) ([]model.Activity, error)

	// RecentForFile is like Recent but restricted to one document filename.
	RecentForFile(ctx context.Context, filename string, limit int) ([]model.Activity, error)
}
