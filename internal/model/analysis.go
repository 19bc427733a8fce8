package model

import "time"

// Analysis is the persisted record of one analysis run. It flattens an
// AnalysisReport into the wire shape served by the API and stored in the
// database. StoragePath is empty for pasted-text analyses that archived no
// original document.
type Analysis struct {
	ID              string    `json:"id"`
	Filename        string    `json:"filename,omitempty"`
	StoragePath     string    `json:"-"`
	AIScore         float64   `json:"ai_score"`
	AILabel         Label     `json:"ai_label"`
	PlagiarismScore float64   `json:"plagiarism_score"`
	PlagiarismLabel Label     `json:"plagiarism_label"`
	Sources         []string  `json:"sources"`
	ExtractedText   string    `json:"extracted_text"`
	CreatedAt       time.Time `json:"created_at"`
}

// Report reconstructs the in-memory report from a persisted record.
func (a *Analysis) Report() AnalysisReport {
	return AnalysisReport{
		AI:            ScoreResult{Score: a.AIScore, Label: a.AILabel},
		Originality:   ScoreResult{Score: a.PlagiarismScore, Label: a.PlagiarismLabel, Sources: a.Sources},
		ExtractedText: a.ExtractedText,
	}
}
