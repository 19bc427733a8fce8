// Package scoring defines the score-provider capability and its
// implementations. A Scorer maps extracted text to a ScoreResult; the
// analysis pipeline treats all implementations uniformly so placeholder
// scorers can be replaced by model-backed ones without pipeline changes.
package scoring

import (
	"context"
	"errors"

	"integrityapi/internal/model"
)

// Kind identifies what a scorer measures.
type Kind string

const (
	// KindAI is AI-generation likelihood.
	KindAI Kind = "ai"
	// KindOriginality is the plagiarism/originality estimate.
	KindOriginality Kind = "originality"
)

// ErrScoring wraps internal scorer failures. Callers recover from it by
// substituting an error-labeled zero result; it never aborts an analysis.
var ErrScoring = errors.New("scoring failed")

// Scorer produces a numeric likelihood plus a qualitative label for a text.
type Scorer interface {
	Kind() Kind
	Score(ctx context.Context, text string) (model.ScoreResult, error)
}

// truncate bounds text to a prefix of at most limit characters, to bound the
// per-call cost of downstream classification. The cut lands on a rune
// boundary so a multi-byte character is never split.
func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	seen := 0
	for i := range text {
		if seen == limit {
			return text[:i]
		}
		seen++
	}
	return text
}
