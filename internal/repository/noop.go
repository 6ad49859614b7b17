package repository

import (
	"context"

	"reviewdesk/internal/model"
)

// Discard is used when no journal database is configured.
// Record echoes its input and the Recent queries return nothing.
type Discard struct{}

var _ ActivityRepository = Discard{}

func (Discard) Record(_ context.Context, a *model.Activity) (*model.Activity, error) {
	return a, nil
}

func (Discard) Recent(context.Context, int) ([]model.Activity, error) {
	return []model.Activity{}, nil
}

func (Discard) RecentForFile(context.Context, string, int) ([]model.Activity, error) {
	return []model.Activity{}, nil
}
