package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"integrityapi/internal/model"
	"integrityapi/internal/repository"
)

var analysisCols = []string{"id", "filename", "storage_path", "ai_score", "ai_label", "plagiarism_score", "plagiarism_label", "sources", "extracted_text", "created_at"}

func TestAnalysisPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAnalysisPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	a := &model.Analysis{
		ID:              "test-uuid",
		Filename:        "essay.pdf",
		StoragePath:     "uploads/test-uuid.pdf",
		AIScore:         85.5,
		AILabel:         model.LabelHigh,
		PlagiarismScore: 12,
		PlagiarismLabel: model.LabelHigh,
		Sources:         []string{"Wikipedia - General Knowledge"},
		ExtractedText:   "extracted text",
		CreatedAt:       now,
	}

	rows := sqlmock.NewRows(analysisCols).
		AddRow(a.ID, a.Filename, a.StoragePath, a.AIScore, string(a.AILabel), a.PlagiarismScore, string(a.PlagiarismLabel), []byte(`["Wikipedia - General Knowledge"]`), a.ExtractedText, a.CreatedAt)

	mock.ExpectQuery("INSERT INTO analyses").
		WithArgs(a.ID, a.Filename, a.StoragePath, a.AIScore, string(a.AILabel), a.PlagiarismScore, string(a.PlagiarismLabel), []byte(`["Wikipedia - General Knowledge"]`), a.ExtractedText, a.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, a)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, a.ID, result.ID)
	assert.Equal(t, []string{"Wikipedia - General Knowledge"}, result.Sources)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAnalysisPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(analysisCols).
			AddRow("test-id", "essay.docx", "uploads/test-id.docx", 12.0, "low", 4.0, "low", []byte(`[]`), "text", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		a, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, a)
		assert.Equal(t, "test-id", a.ID)
		assert.Empty(t, a.Sources)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		a, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, a)
	})
}

func TestAnalysisPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAnalysisPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM analyses").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows(analysisCols).
			AddRow("test-id", "essay.pdf", "uploads/test-id.pdf", 85.5, "high", 15.0, "high", []byte(`["Academic Source A"]`), "text", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM analyses ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, []string{"Academic Source A"}, res.Items[0].Sources)
	})
}

func TestAnalysisPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAnalysisPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM analyses WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "test-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
