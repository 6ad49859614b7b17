package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"reviewdesk/internal/config"
)

// partSize bounds the buffer used for uploads of unknown length.
const partSize = 8 << 20

const sourceMetaKey = "source-filename"

type minioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinIO connects to the archive bucket, creating it when missing.
func NewMinIO(ctx context.Context, cfg config.ArchiveConfig) (Archive, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := ensureBucket(ctx, cli, cfg.Bucket); err != nil {
		return nil, err
	}

	return &minioArchive{client: cli, bucket: cfg.Bucket}, nil
}

func ensureBucket(ctx context.Context, cli *minio.Client, bucket string) error {
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

func (m *minioArchive) Store(ctx context.Context, name, source string, r io.Reader, contentType string) (Artifact, error) {
	key, err := ObjectKey(name)
	if err != nil {
		return Artifact{}, err
	}
	if contentType == "" {
		contentType = "application/pdf"
	}

	info, err := m.client.PutObject(ctx, m.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{sourceMetaKey: source},
		PartSize:     partSize,
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("archive %s: %w", key, err)
	}

	return Artifact{
		Name:           name,
		Key:            key,
		SourceFilename: source,
		ContentType:    contentType,
		Size:           info.Size,
		ETag:           info.ETag,
		ArchivedAt:     time.Now().UTC(),
	}, nil
}

// Link presigns a GET that downloads the PDF as an attachment named after the artifact.
func (m *minioArchive) Link(ctx context.Context, name string, ttl time.Duration) (string, error) {
	key, err := ObjectKey(name)
	if err != nil {
		return "", err
	}
	params := url.Values{}
	params.Set("response-content-disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, ttl, params)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}
