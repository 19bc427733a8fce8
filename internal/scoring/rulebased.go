package scoring

import (
	"context"
	"strings"

	"integrityapi/internal/config"
	"integrityapi/internal/model"
)

// RuleBasedScorer estimates AI-generation likelihood from a fixed set of
// telltale phrases. It is a stand-in policy: the presence of any configured
// phrase classifies the text as high likelihood, otherwise low. A real
// classifier can replace it behind the Scorer interface.
type RuleBasedScorer struct {
	phrases     []string
	highScore   float64
	lowScore    float64
	prefixLimit int
}

// NewRuleBasedScorer builds the scorer from the configured scoring policy.
func NewRuleBasedScorer(cfg config.ScoringConfig) *RuleBasedScorer {
	return &RuleBasedScorer{
		phrases:     cfg.TelltalePhrases,
		highScore:   cfg.HighScore,
		lowScore:    cfg.LowScore,
		prefixLimit: cfg.PrefixLimit,
	}
}

func (s *RuleBasedScorer) Kind() Kind { return KindAI }

// Score classifies a bounded prefix of the text.
// TODO: score fixed-size chunks and average instead of a single prefix.
func (s *RuleBasedScorer) Score(ctx context.Context, text string) (model.ScoreResult, error) {
	prefix := truncate(text, s.prefixLimit)

	for _, phrase := range s.phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(prefix, phrase) {
			return model.ScoreResult{Score: s.highScore, Label: model.LabelHigh}, nil
		}
	}
	return model.ScoreResult{Score: s.lowScore, Label: model.LabelLow}, nil
}
