package analyses

import "time"

// Analysis is one completed ranking run over a user's resume pool.
type Analysis struct {
	ID        string
	UserID    string
	JobPrompt string
	CreatedAt time.Time
}

// RankedResult pairs a result with the resume's candidate identity for display.
type RankedResult struct {
	AnalysisResult
	CandidateName string
	FileName      string
}

// AnalysisResult is a single resume's outcome within an analysis. Ranks are
// 1-based and consecutive within an analysis.
type AnalysisResult struct {
	ID         string
	AnalysisID string
	ResumeID   string
	Score      int
	Rank       int
	Strengths  []string
	Weaknesses []string
	Summary    string
}
