// Package workflow is the HTTP client for the remote review workflow service.
//
// Every operation maps to exactly one outbound request. The client keeps no
// state between calls: the service owns documents, drafts, rendered PDFs and
// email delivery. Nothing is retried.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"reviewdesk/internal/model"
)

// Config is injected at construction; there is no package-level base address.
type Config struct {
	BaseURL string
	// Timeout bounds each call. Zero disables the client-side timeout.
	Timeout time.Duration
}

// File is one binary blob to upload.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Client issues workflow requests against a single base address.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	base *url.URL
	http *http.Client
}

// reply is the loose JSON envelope every mutating endpoint answers with.
type reply struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	PDF     string `json:"pdf"`
}

type filenameBody struct {
	Filename string `json:"filename"`
}

// New validates cfg and returns a client whose transport is traced with otelhttp.
func New(cfg Config) (*Client, error) {
	base, err := parseBase(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: base,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
	}, nil
}

func parseBase(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("workflow base url is required")
	}
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse workflow base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("workflow base url must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("workflow base url has no host: %q", raw)
	}
	return u, nil
}

// BaseURL returns the configured service address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// DownloadURL returns the retrieval address of an artifact.
func (c *Client) DownloadURL(kind model.ArtifactKind, name string) string {
	return c.endpoint("download", string(kind), name)
}

// SubmitForReview uploads files together with the reviewer's email as one multipart request.
func (c *Client) SubmitForReview(ctx context.Context, files []File, email string) (string, error) {
	if len(files) == 0 {
		return "", invalid("at least one file is required")
	}
	if strings.TrimSpace(email) == "" {
		return "", invalid("reviewer email is required")
	}
	for i, f := range files {
		if f.Body == nil || f.Name == "" {
			return "", invalid("file %d has no name or content", i)
		}
	}

	body, ctype, err := multipartBody(func(w *multipart.Writer) error {
		for _, f := range files {
			if err := writeFilePart(w, "files", f); err != nil {
				return err
			}
		}
		return w.WriteField("email", email)
	})
	if err != nil {
		return "", err
	}

	var out reply
	if err := c.post(ctx, "send review", "send-review", ctype, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// UploadDraft uploads a single draft. The service binds it to a record by its file name.
func (c *Client) UploadDraft(ctx context.Context, file File) (string, error) {
	if file.Body == nil || file.Name == "" {
		return "", invalid("a draft file is required")
	}

	body, ctype, err := multipartBody(func(w *multipart.Writer) error {
		return writeFilePart(w, "file", file)
	})
	if err != nil {
		return "", err
	}

	var out reply
	if err := c.post(ctx, "upload draft", "upload-draft", ctype, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ListDocuments fetches the full record list. There is no pagination.
func (c *Client) ListDocuments(ctx context.Context) ([]model.DocumentRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("files"), nil)
	if err != nil {
		return nil, fmt.Errorf("list documents: build request: %w", err)
	}
	var records []model.DocumentRecord
	if err := c.do(req, "list documents", &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.DocumentRecord{}
	}
	return records, nil
}

// Approve marks the draft of filename as approved.
func (c *Client) Approve(ctx context.Context, filename string) (string, error) {
	out, err := c.postFilename(ctx, "approve", "approve", filename)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// ConvertToOutput asks the service to render filename to PDF and returns the artifact key.
// A success status without a populated "pdf" key is reported as ErrPayload.
func (c *Client) ConvertToOutput(ctx context.Context, filename string) (string, error) {
	out, err := c.postFilename(ctx, "convert pdf", "convert-pdf", filename)
	if err != nil {
		return "", err
	}
	if out.PDF == "" {
		return "", fmt.Errorf("convert pdf: %w: missing pdf key", ErrPayload)
	}
	return out.PDF, nil
}

// SendFinal asks the service to email the rendered artifact of filename.
// The confirmation "message" field must be present for the call to count as sent.
func (c *Client) SendFinal(ctx context.Context, filename string) (string, error) {
	out, err := c.postFilename(ctx, "send final", "send-final-policy", filename)
	if err != nil {
		return "", err
	}
	if out.Message == "" {
		return "", fmt.Errorf("send final: %w: missing message key", ErrPayload)
	}
	return out.Message, nil
}

// Download streams an artifact. The caller must close the returned body.
func (c *Client) Download(ctx context.Context, kind model.ArtifactKind, name string) (io.ReadCloser, string, error) {
	if !kind.Valid() {
		return nil, "", invalid("unknown artifact kind %q", kind)
	}
	if name == "" {
		return nil, "", invalid("artifact name is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(kind, name), nil)
	if err != nil {
		return nil, "", fmt.Errorf("download: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download: %w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, "", statusError("download", resp)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) postFilename(ctx context.Context, op, path, filename string) (reply, error) {
	if strings.TrimSpace(filename) == "" {
		return reply{}, invalid("filename is required")
	}
	b, err := json.Marshal(filenameBody{Filename: filename})
	if err != nil {
		return reply{}, fmt.Errorf("%s: encode body: %w", op, err)
	}
	var out reply
	if err := c.post(ctx, op, path, "application/json", bytes.NewReader(b), &out); err != nil {
		return reply{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, op, path, ctype string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", ctype)
	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// An empty body is an empty reply; callers that need a key check for it.
		if _, ok := out.(*reply); ok && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s: %w: %v", op, ErrPayload, err)
	}
	return nil
}

func (c *Client) endpoint(segments ...string) string {
	u := *c.base
	escaped := make([]string, 0, len(segments))
	raw := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
		raw = append(raw, s)
	}
	u.Path = c.base.Path + "/" + strings.Join(raw, "/")
	u.RawPath = c.base.EscapedPath() + "/" + strings.Join(escaped, "/")
	return u.String()
}

func statusError(op string, resp *http.Response) error {
	se := &StatusError{Op: op, Status: resp.StatusCode}
	var body reply
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		se.Message = body.Error
	}
	return se
}

func multipartBody(fill func(w *multipart.Writer) error) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return nil, "", fmt.Errorf("build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, field string, f File) error {
	ctype := f.ContentType
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
	h.Set("Content-Type", ctype)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f.Body)
	return err
}
