// Package candidate derives candidate identity (name, email, phone) from
// raw resume text. An LLM extractor is used when available; a regex pass
// over the text serves as the deterministic fallback.
package candidate

import (
	"context"
	"regexp"
	"strings"

	"resumerank/internal/llm"
	"resumerank/internal/shared/telemetry"
)

const UnknownName = "Unknown Candidate"

var (
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe = regexp.MustCompile(`(\+?1?\s*[-.]?\(?(\d{3})\)?[-.]?\s?(\d{3})[-.]?(\d{4}))|(\+?[\d\s\-()]{10,})`)
	digitRe = regexp.MustCompile(`\d{3}`)
)

// Extractor resolves candidate info, preferring the LLM path when one is
// configured and falling back to regex heuristics on any failure.
type Extractor struct {
	llm llm.CandidateExtractor
}

func NewExtractor(ex llm.CandidateExtractor) *Extractor {
	return &Extractor{llm: ex}
}

// Extract never fails: any LLM error degrades to the regex fallback.
func (e *Extractor) Extract(ctx context.Context, resumeText string) llm.CandidateInfo {
	if e.llm != nil {
		info, err := e.llm.ExtractCandidate(ctx, resumeText)
		if err == nil {
			return fillMissing(info, resumeText)
		}
		telemetry.Warn("candidate.extract.fallback", map[string]any{
			"error": err.Error(),
		})
	}
	return ExtractFallback(resumeText)
}

// ExtractFallback is a pure function of the resume text: the same input
// always yields the same candidate info.
func ExtractFallback(resumeText string) llm.CandidateInfo {
	return llm.CandidateInfo{
		Name:  extractName(resumeText),
		Email: emailRe.FindString(resumeText),
		Phone: strings.TrimSpace(phoneRe.FindString(resumeText)),
	}
}

// fillMissing backfills fields the LLM left empty using the regex pass.
func fillMissing(info llm.CandidateInfo, resumeText string) llm.CandidateInfo {
	if info.Name == "" || info.Email == "" || info.Phone == "" {
		fb := ExtractFallback(resumeText)
		if info.Name == "" {
			info.Name = fb.Name
		}
		if info.Email == "" {
			info.Email = fb.Email
		}
		if info.Phone == "" {
			info.Phone = fb.Phone
		}
	}
	return info
}

func extractName(resumeText string) string {
	var lines []string
	for _, line := range strings.Split(resumeText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) > 0 {
		first := lines[0]
		if !strings.Contains(first, "@") && !digitRe.MatchString(first) && len(first) < 100 {
			return first
		}
	}

	// A "Name:" style label names the candidate on the following line.
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "name:") || strings.Contains(lower, "name -") {
			if i+1 < len(lines) {
				return lines[i+1]
			}
		}
	}
	return UnknownName
}
