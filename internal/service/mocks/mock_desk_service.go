package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewdesk/internal/model"
	"reviewdesk/internal/service"
	"reviewdesk/internal/workflow"
)

type MockDeskService struct {
	mock.Mock
}

func (m *MockDeskService) Refresh(ctx context.Context) (service.Outcome, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func (m *MockDeskService) SubmitForReview(ctx context.Context, files []workflow.File, email string) (service.Outcome, error) {
	args := m.Called(ctx, files, email)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func (m *MockDeskService) UploadDraft(ctx context.Context, file workflow.File) (service.Outcome, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func (m *MockDeskService) Approve(ctx context.Context, filename string) (service.Outcome, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func (m *MockDeskService) Convert(ctx context.Context, filename string) (service.Outcome, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func (m *MockDeskService) SendFinal(ctx context.Context, filename string) (service.Outcome, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func (m *MockDeskService) Recent(ctx context.Context, filename string, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, filename, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockDeskService) ArchivedURL(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockDeskService) DownloadURL(kind model.ArtifactKind, name string) string {
	args := m.Called(kind, name)
	if f, ok := args.Get(0).(func(model.ArtifactKind, string) string); ok {
		return f(kind, name)
	}
	return args.String(0)
}

func (m *MockDeskService) Snapshot() []model.DocumentRecord {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.DocumentRecord)
}
