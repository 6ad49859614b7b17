package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reviewdesk/internal/model"
	"reviewdesk/internal/repository"
	"reviewdesk/internal/storage"
	"reviewdesk/internal/workflow"
)

var (
	ErrArchiveDisabled = errors.New("artifact archive is not configured")
	ErrNameRequired    = errors.New("artifact name is required")
)

// Level is the severity of a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is the single user-facing message produced by an action.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Outcome is what the console shows after an action.
// It is populated on failure too; the accompanying error carries the cause.
type Outcome struct {
	Notice Notice `json:"notice"`
	// OpenURL is set only when an artifact should open in a new window.
	OpenURL   string                 `json:"open_url,omitempty"`
	Documents []model.DocumentRecord `json:"documents"`
	Refreshed bool                   `json:"refreshed"`
}

// Workflow is the subset of the review service client the desk drives.
type Workflow interface {
	SubmitForReview(ctx context.Context, files []workflow.File, email string) (string, error)
	UploadDraft(ctx context.Context, file workflow.File) (string, error)
	ListDocuments(ctx context.Context) ([]model.DocumentRecord, error)
	Approve(ctx context.Context, filename string) (string, error)
	ConvertToOutput(ctx context.Context, filename string) (string, error)
	SendFinal(ctx context.Context, filename string) (string, error)
	Download(ctx context.Context, kind model.ArtifactKind, name string) (body io.ReadCloser, contentType string, err error)
	DownloadURL(kind model.ArtifactKind, name string) string
}

// DeskService is the console's controller: it dispatches one action to the
// review service, re-reads the list after a successful mutation and turns the
// result into a Notice.
type DeskService interface {
	Refresh(ctx context.Context) (Outcome, error)
	SubmitForReview(ctx context.Context, files []workflow.File, email string) (Outcome, error)
	UploadDraft(ctx context.Context, file workflow.File) (Outcome, error)
	Approve(ctx context.Context, filename string) (Outcome, error)
	Convert(ctx context.Context, filename string) (Outcome, error)
	SendFinal(ctx context.Context, filename string) (Outcome, error)

	// Recent returns journal entries, newest first. An empty filename means all files.
	Recent(ctx context.Context, filename string, limit int) ([]model.Activity, error)
	// Snapshot returns the last applied list without asking the service.
	Snapshot() []model.DocumentRecord
	// ArchivedURL returns a pre-signed URL for an archived PDF.
	ArchivedURL(ctx context.Context, name string) (string, error)
	DownloadURL(kind model.ArtifactKind, name string) string
}

// Notice texts shown to the user.
const (
	textSubmitMissing  = "Please select file(s) and email"
	textSubmitOK       = "File(s) sent!"
	textSubmitFailed   = "Failed to send file(s) for review."
	textDraftMissing   = "Choose a draft file"
	textDraftOK        = "Draft uploaded!"
	textDraftFailed    = "Failed to upload draft."
	textApproveOK      = "Approved!"
	textApproveFailed  = "Failed to approve draft."
	textConvertOK      = "PDF created successfully!"
	textConvertFailed  = "Failed to convert to PDF."
	textSendFinalOK    = "Final policy sent via email!"
	textSendFinalError = "Error sending final policy."
	textListFailed     = "Failed to load documents."
	textFilenameNeeded = "Choose a document first"
)

const archiveURLExpiry = 15 * time.Minute

type desk struct {
	wf      Workflow
	board   *Board
	journal repository.ActivityRepository
	archive storage.Archive
	metrics *Metrics
	log     zerolog.Logger
}

// Option customizes a desk built by NewDeskService.
type Option func(*desk)

// WithJournal records every dispatched action in repo.
func WithJournal(repo repository.ActivityRepository) Option {
	return func(d *desk) { d.journal = repo }
}

// WithArchive mirrors every converted PDF into store.
func WithArchive(store storage.Archive) Option {
	return func(d *desk) { d.archive = store }
}

// WithMetrics counts actions in m.
func WithMetrics(m *Metrics) Option {
	return func(d *desk) { d.metrics = m }
}

// WithLogger sets the desk logger. The default discards output.
func WithLogger(log zerolog.Logger) Option {
	return func(d *desk) { d.log = log }
}

// NewDeskService constructs a DeskService around wf.
func NewDeskService(wf Workflow, opts ...Option) DeskService {
	d := &desk{
		wf:      wf,
		board:   NewBoard(),
		journal: repository.Discard{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Refresh re-fetches the whole list and replaces the board.
func (d *desk) Refresh(ctx context.Context) (Outcome, error) {
	docs, err := d.refresh(ctx)
	if err != nil {
		d.metrics.observe(model.ActionRefresh, model.OutcomeFailure)
		d.log.Error().Err(err).Str("action", string(model.ActionRefresh)).Msg("list documents failed")
		return d.failed(textListFailed), err
	}
	d.metrics.observe(model.ActionRefresh, model.OutcomeSuccess)
	return Outcome{Documents: docs, Refreshed: true}, nil
}

func (d *desk) SubmitForReview(ctx context.Context, files []workflow.File, email string) (Outcome, error) {
	msg, err := d.wf.SubmitForReview(ctx, files, email)
	return d.mutated(ctx, model.ActionSubmitForReview, fileNames(files), msg, err, textSubmitOK, textSubmitFailed, textSubmitMissing)
}

func (d *desk) UploadDraft(ctx context.Context, file workflow.File) (Outcome, error) {
	msg, err := d.wf.UploadDraft(ctx, file)
	return d.mutated(ctx, model.ActionUploadDraft, []string{file.Name}, msg, err, textDraftOK, textDraftFailed, textDraftMissing)
}

func (d *desk) Approve(ctx context.Context, filename string) (Outcome, error) {
	msg, err := d.wf.Approve(ctx, filename)
	return d.mutated(ctx, model.ActionApprove, []string{filename}, msg, err, textApproveOK, textApproveFailed, textFilenameNeeded)
}

// Convert requests a PDF rendering. On success the outcome opens the
// artifact's download address; the list is not re-fetched.
func (d *desk) Convert(ctx context.Context, filename string) (Outcome, error) {
	pdf, err := d.wf.ConvertToOutput(ctx, filename)
	if err != nil {
		return d.rejected(ctx, model.ActionConvert, []string{filename}, err, textConvertFailed, textFilenameNeeded)
	}

	d.settle(ctx, model.ActionConvert, []string{filename}, model.OutcomeSuccess, pdf)
	d.archivePDF(ctx, filename, pdf)

	return Outcome{
		Notice:    Notice{Level: LevelSuccess, Text: textConvertOK},
		OpenURL:   d.wf.DownloadURL(model.ArtifactPDF, pdf),
		Documents: d.board.Snapshot(),
	}, nil
}

// SendFinal asks the service to email the final artifact. The list is not re-fetched.
func (d *desk) SendFinal(ctx context.Context, filename string) (Outcome, error) {
	msg, err := d.wf.SendFinal(ctx, filename)
	if err != nil {
		return d.rejected(ctx, model.ActionSendFinal, []string{filename}, err, textSendFinalError, textFilenameNeeded)
	}
	d.settle(ctx, model.ActionSendFinal, []string{filename}, model.OutcomeSuccess, msg)
	return Outcome{
		Notice:    Notice{Level: LevelSuccess, Text: textSendFinalOK},
		Documents: d.board.Snapshot(),
	}, nil
}

func (d *desk) Recent(ctx context.Context, filename string, limit int) ([]model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if filename != "" {
		return d.journal.RecentForFile(ctx, filename, limit)
	}
	return d.journal.Recent(ctx, limit)
}

func (d *desk) ArchivedURL(ctx context.Context, name string) (string, error) {
	if d.archive == nil {
		return "", ErrArchiveDisabled
	}
	if name == "" {
		return "", ErrNameRequired
	}
	return d.archive.Link(ctx, name, archiveURLExpiry)
}

func (d *desk) Snapshot() []model.DocumentRecord {
	return d.board.Snapshot()
}

func (d *desk) DownloadURL(kind model.ArtifactKind, name string) string {
	return d.wf.DownloadURL(kind, name)
}

// mutated finishes a draft upload, approval or review submission: on success
// the list is re-fetched exactly once; on failure nothing is re-fetched.
func (d *desk) mutated(ctx context.Context, action model.Action, filenames []string, msg string, err error, okText, failText, invalidText string) (Outcome, error) {
	if err != nil {
		return d.rejected(ctx, action, filenames, err, failText, invalidText)
	}
	d.settle(ctx, action, filenames, model.OutcomeSuccess, msg)

	out := Outcome{Notice: Notice{Level: LevelSuccess, Text: okText}}
	docs, rerr := d.refresh(ctx)
	if rerr != nil {
		// The action itself went through; only the read-back failed.
		d.metrics.observe(model.ActionRefresh, model.OutcomeFailure)
		d.log.Warn().Err(rerr).Str("action", string(action)).Msg("refresh after action failed")
		out.Documents = d.board.Snapshot()
		return out, nil
	}
	d.metrics.observe(model.ActionRefresh, model.OutcomeSuccess)
	out.Documents = docs
	out.Refreshed = true
	return out, nil
}

func (d *desk) rejected(ctx context.Context, action model.Action, filenames []string, err error, failText, invalidText string) (Outcome, error) {
	text, outcome := failText, model.OutcomeFailure
	if errors.Is(err, workflow.ErrValidation) {
		text, outcome = invalidText, model.OutcomeInvalid
	}
	d.settle(ctx, action, filenames, outcome, err.Error())
	d.log.Error().
		Err(err).
		Str("action", string(action)).
		Strs("filenames", filenames).
		Str("request_id", RequestIDFrom(ctx)).
		Msg("workflow action failed")
	return d.failed(text), fmt.Errorf("%s: %w", action, err)
}

func (d *desk) failed(text string) Outcome {
	return Outcome{
		Notice:    Notice{Level: LevelError, Text: text},
		Documents: d.board.Snapshot(),
	}
}

func (d *desk) refresh(ctx context.Context) ([]model.DocumentRecord, error) {
	ticket := d.board.Ticket()
	docs, err := d.wf.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if !d.board.Apply(ticket, docs) {
		d.log.Debug().Uint64("ticket", ticket).Msg("discarded stale document list")
		return d.board.Snapshot(), nil
	}
	return docs, nil
}

// settle counts the action once and journals one entry per file, so a batch
// submission shows up in each file's history. Journal failures are logged only.
func (d *desk) settle(ctx context.Context, action model.Action, filenames []string, outcome, message string) {
	d.metrics.observe(action, outcome)

	if len(filenames) == 0 {
		filenames = []string{""}
	}
	now := time.Now().UTC()
	for _, name := range filenames {
		entry := &model.Activity{
			ID:        uuid.NewString(),
			Action:    action,
			Filename:  name,
			Outcome:   outcome,
			Message:   message,
			RequestID: RequestIDFrom(ctx),
			CreatedAt: now,
		}
		if _, err := d.journal.Record(ctx, entry); err != nil {
			d.log.Warn().Err(err).Str("action", string(action)).Str("filename", name).Msg("journal write failed")
		}
	}
}

// archivePDF streams the rendered artifact into the archive bucket, if one is configured.
func (d *desk) archivePDF(ctx context.Context, filename, pdf string) {
	if d.archive == nil {
		return
	}
	body, ctype, err := d.wf.Download(ctx, model.ArtifactPDF, pdf)
	if err != nil {
		d.log.Warn().Err(err).Str("pdf", pdf).Msg("fetch artifact for archive failed")
		return
	}
	defer body.Close()

	art, err := d.archive.Store(ctx, pdf, filename, body, ctype)
	if err != nil {
		d.log.Warn().Err(err).Str("pdf", pdf).Msg("archive artifact failed")
		return
	}
	d.log.Info().Str("key", art.Key).Int64("size", art.Size).Msg("artifact archived")
}

func fileNames(files []workflow.File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}
