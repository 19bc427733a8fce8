package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"integrityapi/internal/model"
	"integrityapi/internal/repository"
)

// AnalysisPostgres is a PostgreSQL implementation of repository.AnalysisRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// The sources column is JSONB, marshalled from the record's string slice.
type AnalysisPostgres struct {
	db *sql.DB
}

// NewAnalysisPostgres creates a new AnalysisPostgres repository.
func NewAnalysisPostgres(db *sql.DB) *AnalysisPostgres {
	return &AnalysisPostgres{db: db}
}

var _ repository.AnalysisRepository = (*AnalysisPostgres)(nil)

const analysisColumns = `id, filename, storage_path, ai_score, ai_label, plagiarism_score, plagiarism_label, sources, extracted_text, created_at`

// Create inserts a new analysis row and returns the stored record.
func (r *AnalysisPostgres) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	const q = `
		INSERT INTO analyses (id, filename, storage_path, ai_score, ai_label, plagiarism_score, plagiarism_label, sources, extracted_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + analysisColumns

	sources, err := marshalSources(a.Sources)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.Filename,
		a.StoragePath,
		a.AIScore,
		a.AILabel,
		a.PlagiarismScore,
		a.PlagiarismLabel,
		sources,
		a.ExtractedText,
		a.CreatedAt,
	)
	return scanAnalysis(row)
}

// FindByID fetches a single analysis by its ID.
func (r *AnalysisPostgres) FindByID(ctx context.Context, id string) (*model.Analysis, error) {
	const q = `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE id = $1
	`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, id))
}

// List returns analyses using LIMIT/OFFSET pagination and a total count.
func (r *AnalysisPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Analysis], error) {
	const qCount = `SELECT COUNT(*) FROM analyses`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + analysisColumns + `
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysisRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Analysis]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes an analysis by ID. It does not return an error if the row
// does not exist.
func (r *AnalysisPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM analyses WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row *sql.Row) (*model.Analysis, error) {
	return scanAnalysisRow(row)
}

func scanAnalysisRow(row rowScanner) (*model.Analysis, error) {
	var (
		a       model.Analysis
		sources []byte
	)
	if err := row.Scan(
		&a.ID,
		&a.Filename,
		&a.StoragePath,
		&a.AIScore,
		&a.AILabel,
		&a.PlagiarismScore,
		&a.PlagiarismLabel,
		&sources,
		&a.ExtractedText,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sources, &a.Sources); err != nil {
		return nil, fmt.Errorf("unmarshal sources: %w", err)
	}
	return &a, nil
}

func marshalSources(sources []string) ([]byte, error) {
	if sources == nil {
		sources = []string{}
	}
	b, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("marshal sources: %w", err)
	}
	return b, nil
}
