package analyses

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"resumerank/internal/llm"
	"resumerank/internal/shared/telemetry"
)

const scorerRetryBaseDelay = 300 * time.Millisecond

// retryingScorer retries one transient scoring failure before giving up.
type retryingScorer struct {
	base       llm.Scorer
	analysisID string
}

func newRetryingScorer(base llm.Scorer, analysisID string) llm.Scorer {
	if base == nil {
		return nil
	}
	return retryingScorer{
		base:       base,
		analysisID: analysisID,
	}
}

func (r retryingScorer) ScoreResume(ctx context.Context, resumeText, jobPrompt string) (llm.ResumeScore, error) {
	score, err := r.base.ScoreResume(ctx, resumeText, jobPrompt)
	if err == nil || !shouldRetryScore(err) {
		return score, err
	}

	telemetry.Warn("rank.score.retry", map[string]any{
		"analysis_id": r.analysisID,
		"error":       sanitizeError(err),
	})
	select {
	case <-time.After(scorerRetryBaseDelay):
	case <-ctx.Done():
		return llm.ResumeScore{}, ctx.Err()
	}

	return r.base.ScoreResume(ctx, resumeText, jobPrompt)
}

func shouldRetryScore(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
