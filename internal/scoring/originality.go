package scoring

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"integrityapi/internal/config"
	"integrityapi/internal/model"
)

// OriginalityScorer estimates how much of the text matches pre-existing
// sources. It is an explicitly randomized placeholder for an external
// similarity-search call: the score is drawn uniformly from [0, max] and the
// configured reference sources are cited only when the score exceeds the
// threshold. Callers may rely on the range and on the score/source
// consistency, never on a specific value.
type OriginalityScorer struct {
	maxScore  int
	threshold float64
	sources   []string

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewOriginalityScorer builds the scorer from the configured scoring policy.
func NewOriginalityScorer(cfg config.ScoringConfig) *OriginalityScorer {
	return newOriginalityScorer(cfg, rand.NewSource(time.Now().UnixNano()))
}

func newOriginalityScorer(cfg config.ScoringConfig, src rand.Source) *OriginalityScorer {
	return &OriginalityScorer{
		maxScore:  cfg.OriginalityMax,
		threshold: cfg.SourceThreshold,
		sources:   cfg.ReferenceSources,
		rng:       rand.New(src),
	}
}

func (s *OriginalityScorer) Kind() Kind { return KindOriginality }

func (s *OriginalityScorer) Score(ctx context.Context, text string) (model.ScoreResult, error) {
	s.mu.Lock()
	score := float64(s.rng.Intn(s.maxScore + 1))
	s.mu.Unlock()

	res := model.ScoreResult{Score: score, Label: model.LabelLow}
	if score > s.threshold {
		res.Label = model.LabelHigh
		res.Sources = append([]string(nil), s.sources...)
	}
	return res, nil
}
