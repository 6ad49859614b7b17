package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewdesk/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c, &hits
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "http", baseURL: "http://localhost:5000"},
		{name: "trailing slash", baseURL: "https://review.example.com/api/"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "no scheme", baseURL: "localhost:5000", wantErr: true},
		{name: "ftp", baseURL: "ftp://files.example.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Config{BaseURL: tt.baseURL})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			assert.NoError(t, err)
			assert.False(t, strings.HasSuffix(c.BaseURL(), "/"))
		})
	}
}

func TestClient_DownloadURL(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:5000/"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/download/original/policy.docx", c.DownloadURL(model.ArtifactOriginal, "policy.docx"))
	assert.Equal(t, "http://localhost:5000/download/draft/policy.docx", c.DownloadURL(model.ArtifactDraft, "policy.docx"))
	assert.Equal(t, "http://localhost:5000/download/pdf/policy.pdf", c.DownloadURL(model.ArtifactPDF, "policy.pdf"))
	assert.Equal(t, "http://localhost:5000/download/pdf/annual%20report.pdf", c.DownloadURL(model.ArtifactPDF, "annual report.pdf"))
}

func TestClient_SubmitForReview(t *testing.T) {
	t.Run("sends every file and the email in one request", func(t *testing.T) {
		c, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/send-review", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "reviewer@example.com", r.FormValue("email"))
			files := r.MultipartForm.File["files"]
			require.Len(t, files, 2)
			assert.Equal(t, "a.docx", files[0].Filename)
			assert.Equal(t, "b.docx", files[1].Filename)
			writeJSON(w, http.StatusOK, map[string]string{"message": "All files sent for review!"})
		}))

		msg, err := c.SubmitForReview(context.Background(), []File{
			{Name: "a.docx", Body: strings.NewReader("a")},
			{Name: "b.docx", Body: strings.NewReader("b")},
		}, "reviewer@example.com")

		require.NoError(t, err)
		assert.Equal(t, "All files sent for review!", msg)
		assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	})

	t.Run("empty inputs never reach the network", func(t *testing.T) {
		c, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}))

		_, err := c.SubmitForReview(context.Background(), nil, "reviewer@example.com")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = c.SubmitForReview(context.Background(), []File{{Name: "a.docx", Body: strings.NewReader("a")}}, "  ")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = c.SubmitForReview(context.Background(), []File{{Name: "a.docx"}}, "reviewer@example.com")
		assert.ErrorIs(t, err, ErrValidation)

		assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	})

	t.Run("service error status", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing files or email"})
		}))

		_, err := c.SubmitForReview(context.Background(), []File{{Name: "a.docx", Body: strings.NewReader("a")}}, "r@example.com")

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadRequest, se.Status)
		assert.Equal(t, "Missing files or email", se.Message)
	})
}

func TestClient_UploadDraft(t *testing.T) {
	c, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-draft", r.URL.Path)
		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "policy.docx", fh.Filename)
		assert.Equal(t, "draft body", string(b))
		writeJSON(w, http.StatusOK, map[string]string{"message": "Draft uploaded successfully!"})
	}))

	_, err := c.UploadDraft(context.Background(), File{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))

	msg, err := c.UploadDraft(context.Background(), File{Name: "policy.docx", Body: strings.NewReader("draft body")})
	require.NoError(t, err)
	assert.Equal(t, "Draft uploaded successfully!", msg)
}

func TestClient_ListDocuments(t *testing.T) {
	t.Run("decodes records", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/files", r.URL.Path)
			_, _ = io.WriteString(w, `[{"filename":"policy.docx","hasDraft":true,"approved":false}]`)
		}))

		records, err := c.ListDocuments(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []model.DocumentRecord{{Filename: "policy.docx", HasDraft: true}}, records)
	})

	t.Run("null body is an empty list", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `null`)
		}))

		records, err := c.ListDocuments(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("malformed body", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"files":`)
		}))

		_, err := c.ListDocuments(context.Background())
		assert.ErrorIs(t, err, ErrPayload)
	})

	t.Run("unreachable service", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		c, err := New(Config{BaseURL: base})
		require.NoError(t, err)

		_, err = c.ListDocuments(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestClient_Approve(t *testing.T) {
	c, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/approve", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["filename"] == "missing.docx" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Draft not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Draft approved and original file replaced"})
	}))

	msg, err := c.Approve(context.Background(), "policy.docx")
	require.NoError(t, err)
	assert.Equal(t, "Draft approved and original file replaced", msg)

	_, err = c.Approve(context.Background(), "missing.docx")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Contains(t, se.Error(), "Draft not found")

	_, err = c.Approve(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestClient_EmptySuccessBody(t *testing.T) {
	c, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	ctx := context.Background()

	msg, err := c.Approve(ctx, "policy.docx")
	require.NoError(t, err)
	assert.Empty(t, msg)

	_, err = c.UploadDraft(ctx, File{Name: "policy.docx", Body: strings.NewReader("draft")})
	assert.NoError(t, err)

	// keys that carry the result are still required
	_, err = c.ConvertToOutput(ctx, "policy.docx")
	assert.ErrorIs(t, err, ErrPayload)
	_, err = c.SendFinal(ctx, "policy.docx")
	assert.ErrorIs(t, err, ErrPayload)

	// a list must be a JSON array
	_, err = c.ListDocuments(ctx)
	assert.ErrorIs(t, err, ErrPayload)

	assert.Equal(t, int32(5), atomic.LoadInt32(hits))
}

func TestClient_ConvertToOutput(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		want    string
		wantErr error
	}{
		{name: "populated key", status: http.StatusOK, body: map[string]string{"message": "Converted to PDF!", "pdf": "policy.pdf"}, want: "policy.pdf"},
		{name: "empty object", status: http.StatusOK, body: map[string]string{}, wantErr: ErrPayload},
		{name: "empty key", status: http.StatusOK, body: map[string]string{"pdf": ""}, wantErr: ErrPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/convert-pdf", r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			}))

			got, err := c.ConvertToOutput(context.Background(), "policy.docx")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("server failure", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "PDF conversion failed"})
		}))

		_, err := c.ConvertToOutput(context.Background(), "policy.docx")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "PDF conversion failed", se.Message)
	})
}

func TestClient_SendFinal(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-final-policy", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["filename"] == "silent.docx" {
			writeJSON(w, http.StatusOK, map[string]string{})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Final policy sent successfully!"})
	}))

	msg, err := c.SendFinal(context.Background(), "policy.docx")
	require.NoError(t, err)
	assert.Equal(t, "Final policy sent successfully!", msg)

	_, err = c.SendFinal(context.Background(), "silent.docx")
	assert.ErrorIs(t, err, ErrPayload)
}

func TestClient_Download(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/pdf/policy.pdf" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF-1.7")
	}))

	body, ctype, err := c.Download(context.Background(), model.ArtifactPDF, "policy.pdf")
	require.NoError(t, err)
	defer body.Close()
	b, _ := io.ReadAll(body)
	assert.Equal(t, "%PDF-1.7", string(b))
	assert.Equal(t, "application/pdf", ctype)

	_, _, err = c.Download(context.Background(), model.ArtifactPDF, "other.pdf")
	var se *StatusError
	assert.ErrorAs(t, err, &se)

	_, _, err = c.Download(context.Background(), model.ArtifactKind("zip"), "policy.pdf")
	assert.ErrorIs(t, err, ErrValidation)
}
