package llm

import (
	"context"
	"errors"
	"math"
)

// MaxListItems caps strengths/weaknesses arrays coming back from an oracle.
const MaxListItems = 3

// ErrScoringUnavailable signals the scoring oracle could not produce a usable
// result (unreachable, or output that failed validation).
var ErrScoringUnavailable = errors.New("scoring unavailable")

// ResumeScore is a validated scoring result: score already clamped into
// [0,100], list fields capped, no field ever nil.
type ResumeScore struct {
	Score      int      `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Summary    string   `json:"summary"`
}

// CandidateInfo holds best-effort identity fields pulled from resume text.
// Empty string means unknown.
type CandidateInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Scorer scores one resume against a job prompt.
type Scorer interface {
	ScoreResume(ctx context.Context, resumeText, jobPrompt string) (ResumeScore, error)
}

// CandidateExtractor extracts identity fields from resume text.
type CandidateExtractor interface {
	ExtractCandidate(ctx context.Context, resumeText string) (CandidateInfo, error)
}

// RawScore is an oracle response before validation. Fields may be missing,
// fractional, or out of range; Normalize coerces them at the adapter boundary.
type RawScore struct {
	Score      float64  `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Summary    string   `json:"summary"`
}

// Normalize clamps and rounds the score into [0,100], caps the list fields at
// MaxListItems, and substitutes defaults for missing fields.
func Normalize(raw RawScore) ResumeScore {
	out := ResumeScore{
		Score:      ClampScore(raw.Score),
		Strengths:  capList(raw.Strengths),
		Weaknesses: capList(raw.Weaknesses),
		Summary:    raw.Summary,
	}
	if out.Summary == "" {
		out.Summary = "No summary available"
	}
	return out
}

// ClampScore rounds to the nearest integer and clamps into [0,100].
func ClampScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func capList(items []string) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > MaxListItems {
		return items[:MaxListItems]
	}
	return items
}
