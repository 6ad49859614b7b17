package handler

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"reviewdesk/internal/model"
	"reviewdesk/internal/service"
	"reviewdesk/internal/view"
	"reviewdesk/internal/workflow"
)

const recentOnPage = 10

// filenameRequest is the JSON body of the single-document API actions.
type filenameRequest struct {
	Filename string `json:"filename" form:"filename"`
}

// documentsResponse is the JSON shape returned by the API endpoints.
type documentsResponse struct {
	Notice    *service.Notice        `json:"notice,omitempty"`
	OpenURL   string                 `json:"open_url,omitempty"`
	Documents []model.DocumentRecord `json:"documents"`
	Rows      []view.Row             `json:"rows"`
}

// RegisterRoutes attaches the console pages, the JSON API and the health endpoints.
// db may be nil when no journal database is configured.
func RegisterRoutes(app *fiber.App, db *sql.DB, desk service.DeskService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", Page(desk))
	actions := app.Group("/actions")
	actions.Post("/send-review", SendReview(desk))
	actions.Post("/upload-draft", UploadDraft(desk))
	actions.Post("/approve", PageAction(desk.Approve))
	actions.Post("/convert", PageAction(desk.Convert))
	actions.Post("/send-final", PageAction(desk.SendFinal))

	api := app.Group("/api")
	api.Get("/documents", ListDocuments(desk))
	api.Post("/approve", APIAction(desk, desk.Approve))
	api.Post("/convert", APIAction(desk, desk.Convert))
	api.Post("/send-final", APIAction(desk, desk.SendFinal))
	api.Get("/activity", ListActivity(desk))
	api.Get("/archive/:name", ArchivedArtifact(desk))
}

// HealthCheck pings the journal database when one is configured.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Page renders the console. Right after a form action it shows that action's
// notice over the list the action already re-read; otherwise it re-fetches.
func Page(desk service.DeskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if f, ok := takeFlash(c, desk); ok {
			out := service.Outcome{
				Notice:    service.Notice{Level: f.Level, Text: f.Text},
				OpenURL:   f.OpenURL,
				Documents: desk.Snapshot(),
			}
			return renderOutcome(c, desk, out, nil)
		}
		out, err := desk.Refresh(userContext(c))
		return renderOutcome(c, desk, out, err)
	}
}

// SendReview forwards the uploaded files and reviewer email.
func SendReview(desk service.DeskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var headers []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil {
			headers = form.File["files"]
		}

		files, closeAll, err := openFiles(headers)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeAll()

		out, _ := desk.SubmitForReview(userContext(c), files, c.FormValue("email"))
		return afterAction(c, out)
	}
}

// UploadDraft forwards a single draft file.
func UploadDraft(desk service.DeskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var file workflow.File
		if fh, err := c.FormFile("file"); err == nil {
			files, closeAll, err := openFiles([]*multipart.FileHeader{fh})
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer closeAll()
			file = files[0]
		}

		out, _ := desk.UploadDraft(userContext(c), file)
		return afterAction(c, out)
	}
}

// PageAction runs a single-document action from a form post and redirects to the console.
func PageAction(act func(context.Context, string) (service.Outcome, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, _ := act(userContext(c), c.FormValue("filename"))
		return afterAction(c, out)
	}
}

// ListDocuments godoc
// @Summary List tracked documents
// @Produce json
// @Success 200 {object} documentsResponse
// @Failure 502 {object} errorPayload
// @Router /api/documents [get]
func ListDocuments(desk service.DeskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := desk.Refresh(userContext(c))
		if err != nil {
			status, code := classify(err)
			return writeError(c, status, code, out.Notice.Text)
		}
		return c.JSON(toResponse(desk, out))
	}
}

// APIAction godoc
// @Summary Run a single-document workflow action
// @Accept json
// @Produce json
// @Param body body filenameRequest true "document"
// @Success 200 {object} documentsResponse
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/approve [post]
// @Router /api/convert [post]
// @Router /api/send-final [post]
func APIAction(desk service.DeskService, act func(context.Context, string) (service.Outcome, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req filenameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		out, err := act(userContext(c), req.Filename)
		if err != nil {
			status, code := classify(err)
			return writeError(c, status, code, out.Notice.Text)
		}
		return c.JSON(toResponse(desk, out))
	}
}

// ListActivity godoc
// @Summary Recent workflow activity
// @Produce json
// @Param filename query string false "restrict to one document"
// @Param limit query int false "max entries" default(50)
// @Success 200 {array} model.Activity
// @Router /api/activity [get]
func ListActivity(desk service.DeskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "50"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		items, err := desk.Recent(userContext(c), c.Query("filename"), limit)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// ArchivedArtifact godoc
// @Summary Redirect to an archived PDF
// @Param name path string true "pdf name"
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /api/archive/{name} [get]
func ArchivedArtifact(desk service.DeskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := desk.ArchivedURL(userContext(c), c.Params("name"))
		if err != nil {
			status, code := classify(err)
			return writeError(c, status, code, "archived artifact unavailable")
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

func renderOutcome(c *fiber.Ctx, desk service.DeskService, out service.Outcome, err error) error {
	status := fiber.StatusOK
	if err != nil {
		status, _ = classify(err)
	}

	page := view.Page{
		Notice:  out.Notice,
		OpenURL: out.OpenURL,
		Rows:    view.BuildRows(out.Documents, desk),
	}
	if recent, rerr := desk.Recent(userContext(c), "", recentOnPage); rerr == nil {
		page.Activity = recent
	}

	var buf bytes.Buffer
	if err := view.Render(&buf, page); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	c.Type("html")
	return c.Status(status).Send(buf.Bytes())
}

func toResponse(desk service.DeskService, out service.Outcome) documentsResponse {
	res := documentsResponse{
		OpenURL:   out.OpenURL,
		Documents: out.Documents,
		Rows:      view.BuildRows(out.Documents, desk),
	}
	if out.Notice.Text != "" {
		n := out.Notice
		res.Notice = &n
	}
	if res.Documents == nil {
		res.Documents = []model.DocumentRecord{}
	}
	return res
}

func userContext(c *fiber.Ctx) context.Context {
	return service.WithRequestID(c.UserContext(), requestIDFromCtx(c))
}

// openFiles opens every uploaded part; the returned func closes them all.
func openFiles(headers []*multipart.FileHeader) ([]workflow.File, func(), error) {
	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]workflow.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, workflow.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
