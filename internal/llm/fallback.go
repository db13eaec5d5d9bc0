package llm

import (
	"context"
	"fmt"
	"strings"
)

// FallbackSummaryPrefix marks scores produced without a configured oracle so
// callers and tests can tell them apart from real AI output.
const FallbackSummaryPrefix = "Fallback analysis"

var fallbackKeywords = []string{
	"experienced",
	"skilled",
	"proficient",
	"expertise",
	"professional",
	"certification",
	"award",
	"achievement",
}

// FallbackScorer produces deterministic keyword/length heuristic scores when
// no scoring oracle is configured. Identical resume text always yields an
// identical score.
type FallbackScorer struct{}

// ScoreResume is a pure function of resumeText; jobPrompt is ignored.
func (FallbackScorer) ScoreResume(ctx context.Context, resumeText, jobPrompt string) (ResumeScore, error) {
	if err := ctx.Err(); err != nil {
		return ResumeScore{}, err
	}

	score := 50.0
	lower := strings.ToLower(resumeText)
	for _, keyword := range fallbackKeywords {
		if strings.Contains(lower, keyword) {
			score += 5
		}
	}

	// Longer resumes usually carry more signal.
	lengthBonus := float64(len(resumeText)) / 500.0
	if lengthBonus > 20 {
		lengthBonus = 20
	}
	score += lengthBonus

	return ResumeScore{
		Score:      ClampScore(score),
		Strengths:  []string{"Document content detected", "Professional format identified"},
		Weaknesses: []string{"Unable to perform detailed AI analysis without a configured scoring model"},
		Summary:    fmt.Sprintf("%s - Resume has %d characters of content", FallbackSummaryPrefix, len(resumeText)),
	}, nil
}
