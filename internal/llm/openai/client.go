package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"resumerank/internal/llm"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Scorer and llm.CandidateExtractor using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string         `json:"model"`
	Messages            []chatMessage  `json:"messages"`
	ResponseFormat      responseFormat `json:"response_format"`
	MaxCompletionTokens int            `json:"max_completion_tokens,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ScoreResume asks the model for a 0-100 fit score and validates the response
// shape. A failed call or unparseable output maps to llm.ErrScoringUnavailable.
func (c *Client) ScoreResume(ctx context.Context, resumeText, jobPrompt string) (llm.ResumeScore, error) {
	messages := BuildScorePrompt(resumeText, jobPrompt)

	raw, err := c.chatOnce(ctx, messages, scoreMaxTokens)
	if err != nil {
		return llm.ResumeScore{}, fmt.Errorf("%w: %v", llm.ErrScoringUnavailable, err)
	}

	var parsed llm.RawScore
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return llm.ResumeScore{}, fmt.Errorf("%w: score parse: %v", llm.ErrScoringUnavailable, err)
	}
	return llm.Normalize(parsed), nil
}

// ExtractCandidate asks the model for name/email/phone. Absent or literal-null
// fields come back as empty strings; callers fall back to pattern extraction.
func (c *Client) ExtractCandidate(ctx context.Context, resumeText string) (llm.CandidateInfo, error) {
	messages := BuildCandidatePrompt(resumeText)

	raw, err := c.chatOnce(ctx, messages, candidateMaxTokens)
	if err != nil {
		return llm.CandidateInfo{}, err
	}

	var parsed struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return llm.CandidateInfo{}, fmt.Errorf("candidate parse: %w", err)
	}
	return llm.CandidateInfo{
		Name:  cleanField(parsed.Name),
		Email: cleanField(parsed.Email),
		Phone: cleanField(parsed.Phone),
	}, nil
}

func (c *Client) chatOnce(ctx context.Context, messages []chatMessage, maxTokens int) (json.RawMessage, error) {
	reqBody := chatRequest{
		Model:               c.model,
		Messages:            messages,
		ResponseFormat:      responseFormat{Type: "json_object"},
		MaxCompletionTokens: maxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("openai http status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai http status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("invalid JSON from OpenAI")
	}
	logUsage(c.model, parsed.Usage)
	return json.RawMessage(content), nil
}

func cleanField(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "null") {
		return ""
	}
	return trimmed
}

func logUsage(model string, usage *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) {
	if usage == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	log.Printf("llm response model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var (
	_ llm.Scorer             = (*Client)(nil)
	_ llm.CandidateExtractor = (*Client)(nil)
)
