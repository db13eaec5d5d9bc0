package openai

import "fmt"

const (
	// Input truncation bounds. Truncation is deterministic: the same input
	// always produces the same truncated view.
	maxJobPromptChars  = 300
	maxResumeChars     = 1500
	maxCandidateChars  = 1000
	scoreMaxTokens     = 250
	candidateMaxTokens = 150
)

const scoreSystemPrompt = `Score resume vs job fit 0-100. JSON: {"score":N,"strengths":["s1","s2"],"weaknesses":["w1","w2"],"summary":"brief"}`

const candidateSystemPrompt = `You must respond with valid JSON. Extract candidate info from resume.`

// BuildScorePrompt assembles the scoring conversation with truncated inputs.
func BuildScorePrompt(resumeText, jobPrompt string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: scoreSystemPrompt},
		{
			Role: "user",
			Content: fmt.Sprintf("Job:%s\nResume:%s\nScore:",
				truncate(jobPrompt, maxJobPromptChars),
				truncate(resumeText, maxResumeChars)),
		},
	}
}

// BuildCandidatePrompt assembles the identity-extraction conversation.
func BuildCandidatePrompt(resumeText string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: candidateSystemPrompt},
		{
			Role: "user",
			Content: fmt.Sprintf(`Extract name, email, phone from this resume and respond with JSON in this exact format: {"name":"full name or null","email":"email@example.com or null","phone":"phone number or null"}`+"\n\nResume:\n%s",
				truncate(resumeText, maxCandidateChars)),
		},
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
