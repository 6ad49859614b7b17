package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"reviewdesk/internal/model"
)

var activityCols = []string{"id", "action", "filename", "outcome", "message", "request_id", "created_at"}

func TestActivityPostgres_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	a := &model.Activity{
		ID:        "act-1",
		Action:    model.ActionApprove,
		Filename:  "policy.docx",
		Outcome:   model.OutcomeSuccess,
		Message:   "Approved!",
		RequestID: "req-1",
		CreatedAt: now,
	}

	rows := sqlmock.NewRows(activityCols).
		AddRow(a.ID, string(a.Action), a.Filename, a.Outcome, a.Message, a.RequestID, a.CreatedAt)

	mock.ExpectQuery("INSERT INTO workflow_activity").
		WithArgs(a.ID, "approve", a.Filename, a.Outcome, a.Message, a.RequestID, a.CreatedAt).
		WillReturnRows(rows)

	got, err := repo.Record(ctx, a)

	assert.NoError(t, err)
	assert.Equal(t, a, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityPostgres_Record_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO workflow_activity").WillReturnError(errors.New("insert failed"))

	got, err := NewActivityPostgres(db).Record(context.Background(), &model.Activity{ID: "x"})

	assert.EqualError(t, err, "insert failed")
	assert.Nil(t, got)
}

func TestActivityPostgres_Recent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(activityCols).
			AddRow("a2", "convert_pdf", "policy.docx", "success", "PDF created successfully!", "r2", time.Now()).
			AddRow("a1", "approve", "policy.docx", "success", "Approved!", "r1", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM workflow_activity ORDER BY").
			WithArgs(20).
			WillReturnRows(rows)

		items, err := repo.Recent(ctx, 20)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, model.ActionConvert, items[0].Action)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM workflow_activity ORDER BY").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(activityCols))

		items, err := repo.Recent(ctx, 5)

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM workflow_activity ORDER BY").
			WithArgs(5).
			WillReturnError(errors.New("db down"))

		_, err := repo.Recent(ctx, 5)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityPostgres_RecentForFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(activityCols).
		AddRow("a1", "approve", "policy.docx", "success", "Approved!", "r1", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM workflow_activity WHERE filename = ?").
		WithArgs("policy.docx", 10).
		WillReturnRows(rows)

	items, err := NewActivityPostgres(db).RecentForFile(context.Background(), "policy.docx", 10)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "policy.docx", items[0].Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}
