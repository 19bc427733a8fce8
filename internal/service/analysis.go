package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"integrityapi/internal/extractor"
	"integrityapi/internal/model"
	"integrityapi/internal/repository"
	"integrityapi/internal/scoring"
	"integrityapi/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("analysis not found")
	ErrReaderNil  = errors.New("reader is nil")
	// ErrInsufficientInput rejects text below the configured minimum length
	// before any scoring runs.
	ErrInsufficientInput = errors.New("input text is too short")
	// ErrNoDocument means the analysis was produced from pasted text and has
	// no archived container to download.
	ErrNoDocument = errors.New("analysis has no archived document")
)

const presignExpiry = 15 * time.Minute

// AnalysisListResult is the service-level DTO for paginated analyses.
type AnalysisListResult struct {
	Items []model.Analysis `json:"data"`
	Total int              `json:"total"`
}

// AnalysisService defines the use cases around running and serving analyses.
type AnalysisService interface {
	// AnalyzeDocument extracts text from an uploaded container, scores it,
	// archives the original bytes, and persists the resulting record.
	// Extraction and input-length failures abort before anything is stored.
	AnalyzeDocument(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Analysis, error)

	// AnalyzeText scores pasted text directly, skipping extraction and the
	// document archive.
	AnalyzeText(ctx context.Context, text string) (*model.Analysis, error)

	// Get returns a single analysis by its ID.
	Get(ctx context.Context, id string) (*model.Analysis, error)

	// List returns analyses using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*AnalysisListResult, error)

	// Delete removes an analysis and its archived document, if any.
	Delete(ctx context.Context, id string) error

	// DocumentURL returns a presigned download URL for the archived container.
	DocumentURL(ctx context.Context, id string) (string, error)
}

// analysisService is a concrete implementation of AnalysisService.
// It holds no per-request state; each invocation is independent.
type analysisService struct {
	store       storage.ObjectStore
	repo        repository.AnalysisRepository
	extract     extractor.Extractor
	ai          scoring.Scorer
	originality scoring.Scorer
	minInputLen int
}

// NewAnalysisService constructs a new AnalysisService. Any Scorer
// implementation can be substituted for either slot without pipeline changes.
func NewAnalysisService(store storage.ObjectStore, repo repository.AnalysisRepository, ex extractor.Extractor, ai, originality scoring.Scorer, minInputLen int) AnalysisService {
	return &analysisService{
		store:       store,
		repo:        repo,
		extract:     ex,
		ai:          ai,
		originality: originality,
		minInputLen: minInputLen,
	}
}

func (s *analysisService) AnalyzeDocument(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Analysis, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	format, ok := extractor.FormatForFilename(originalFilename)
	if !ok {
		return nil, extractor.ErrUnsupportedFormat
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	text, err := s.extract.Extract(ctx, model.Document{Data: data, Format: format, Filename: originalFilename})
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(text) < s.minInputLen {
		return nil, ErrInsufficientInput
	}

	report := s.score(ctx, text)

	// Archive under the size declared by the upload; fall back to the byte
	// count when the caller did not know it.
	if size <= 0 {
		size = int64(len(data))
	}

	id := uuid.New().String()
	key := filepath.ToSlash(filepath.Join("uploads", id+filepath.Ext(originalFilename)))
	if err := s.store.Put(ctx, key, bytes.NewReader(data), size, contentType); err != nil {
		return nil, fmt.Errorf("archive document: %w", err)
	}

	stored, err := s.repo.Create(ctx, newRecord(id, originalFilename, key, text, report))
	if err != nil {
		// Rollback: remove the archived object so no orphan survives.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *analysisService) AnalyzeText(ctx context.Context, text string) (*model.Analysis, error) {
	if utf8.RuneCountInString(text) < s.minInputLen {
		return nil, ErrInsufficientInput
	}

	report := s.score(ctx, text)

	stored, err := s.repo.Create(ctx, newRecord(uuid.New().String(), "", "", text, report))
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// score runs both providers and assembles the report. The calls are
// independent and run concurrently; a provider failure degrades its own
// result to an error-labeled zero score and never aborts the analysis.
func (s *analysisService) score(ctx context.Context, text string) model.AnalysisReport {
	var aiRes, origRes model.ScoreResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		aiRes = runScorer(gctx, s.ai, text)
		return nil
	})
	g.Go(func() error {
		origRes = runScorer(gctx, s.originality, text)
		return nil
	})
	_ = g.Wait()

	return model.AnalysisReport{AI: aiRes, Originality: origRes, ExtractedText: text}
}

// runScorer isolates one provider call: errors and panics both collapse into
// the error-labeled zero result.
func runScorer(ctx context.Context, sc scoring.Scorer, text string) (res model.ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			res = model.ErrorScore()
		}
	}()

	out, err := sc.Score(ctx, text)
	if err != nil {
		return model.ErrorScore()
	}
	return out
}

func (s *analysisService) Get(ctx context.Context, id string) (*model.Analysis, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *analysisService) List(ctx context.Context, limit, offset int) (*AnalysisListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &AnalysisListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *analysisService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Pasted-text analyses archived nothing.
	if a.StoragePath != "" {
		if err := s.store.Delete(ctx, a.StoragePath); err != nil {
			return fmt.Errorf("delete archived document: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *analysisService) DocumentURL(ctx context.Context, id string) (string, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if a.StoragePath == "" {
		return "", ErrNoDocument
	}
	return s.store.PresignGet(ctx, a.StoragePath, presignExpiry)
}

func newRecord(id, filename, storagePath, text string, report model.AnalysisReport) *model.Analysis {
	return &model.Analysis{
		ID:              id,
		Filename:        filename,
		StoragePath:     storagePath,
		AIScore:         report.AI.Score,
		AILabel:         report.AI.Label,
		PlagiarismScore: report.Originality.Score,
		PlagiarismLabel: report.Originality.Label,
		Sources:         report.Originality.Sources,
		ExtractedText:   text,
		CreatedAt:       time.Now().UTC(),
	}
}
