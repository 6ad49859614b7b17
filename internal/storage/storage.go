// Package storage holds the optional S3-compatible archive for rendered PDFs.
// Artifacts are streamed straight from the review service into the bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

const artifactPrefix = "pdf/"

// ErrInvalidName is returned for artifact names that would escape the pdf/ prefix.
var ErrInvalidName = errors.New("invalid artifact name")

// Artifact describes one archived rendering.
type Artifact struct {
	Name           string
	Key            string
	SourceFilename string
	ContentType    string
	Size           int64
	ETag           string
	ArchivedAt     time.Time
}

// Archive keeps copies of converted PDFs and hands out short-lived links to them.
type Archive interface {
	// Store streams r into the archive under name. source is the document the PDF was rendered from.
	Store(ctx context.Context, name, source string, r io.Reader, contentType string) (Artifact, error)
	// Link returns a pre-signed download URL valid for ttl.
	Link(ctx context.Context, name string, ttl time.Duration) (string, error)
}

// ObjectKey maps an artifact name to its bucket key.
func ObjectKey(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return "", ErrInvalidName
	}
	return artifactPrefix + name, nil
}
