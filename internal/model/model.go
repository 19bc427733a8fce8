package model

// Package model contains domain models/data structures.
// Keep it free of database, HTTP, and scoring concerns so the types can be
// shared across layers without coupling.

// Format is the declared container format of an input document.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatPlain Format = "plain"
)

// Document is a raw input container: bytes plus a declared format tag.
// It is immutable once constructed and discarded after extraction.
type Document struct {
	Data     []byte
	Format   Format
	Filename string
}

// Label is the qualitative classification attached to a score.
type Label string

const (
	LabelLow  Label = "low"
	LabelHigh Label = "high"
	// LabelError marks a score whose provider failed. A result carrying it
	// always has Score 0 and no sources.
	LabelError Label = "error"
)

// ScoreResult is the output of a single score provider.
// Score is a percentage in [0,100] and is meaningful whenever Label is not
// LabelError. Sources is only populated by originality scoring, and only
// when a match was found.
type ScoreResult struct {
	Score   float64  `json:"score"`
	Label   Label    `json:"label"`
	Sources []string `json:"sources,omitempty"`
}

// ErrorScore is the recovery value used when a scorer fails internally.
func ErrorScore() ScoreResult {
	return ScoreResult{Score: 0, Label: LabelError}
}

// AnalysisReport pairs the AI-origin result with the originality result and
// the extracted text they were produced from. It lives for one request only.
type AnalysisReport struct {
	AI            ScoreResult `json:"ai"`
	Originality   ScoreResult `json:"originality"`
	ExtractedText string      `json:"extracted_text"`
}
