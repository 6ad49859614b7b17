package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"reviewdesk/internal/storage"
)

// MockArchive is a testify mock of storage.Archive.
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, name, source string, r io.Reader, contentType string) (storage.Artifact, error) {
	args := m.Called(ctx, name, source, r, contentType)
	if f, ok := args.Get(0).(func(io.Reader) storage.Artifact); ok {
		return f(r), args.Error(1)
	}
	return args.Get(0).(storage.Artifact), args.Error(1)
}

func (m *MockArchive) Link(ctx context.Context, name string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, name, ttl)
	return args.String(0), args.Error(1)
}
