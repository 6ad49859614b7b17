package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewdesk/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ArchiveConfig
		wantErr string
	}{
		{name: "missing endpoint", cfg: config.ArchiveConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}, wantErr: "endpoint is required"},
		{name: "missing credentials", cfg: config.ArchiveConfig{Endpoint: "localhost:9000", Bucket: "b"}, wantErr: "credentials are required"},
		{name: "missing bucket", cfg: config.ArchiveConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, wantErr: "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewMinIO(context.Background(), tt.cfg)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, a)
		})
	}
}

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey("policy.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf/policy.pdf", key)

	for _, bad := range []string{"", ".", "..", "../secrets", `a\b`, "nested/policy.pdf"} {
		_, err := ObjectKey(bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

func TestMinioArchive_RejectsBadNamesBeforeUpload(t *testing.T) {
	// client is never reached for invalid names
	a := &minioArchive{bucket: "artifacts"}

	_, err := a.Store(context.Background(), "../x.pdf", "x.docx", nil, "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = a.Link(context.Background(), "", 0)
	assert.ErrorIs(t, err, ErrInvalidName)
}
