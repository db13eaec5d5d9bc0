package analyses

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumerank/internal/llm"
	"resumerank/internal/resumes"
	"resumerank/internal/shared/metrics"
	"resumerank/internal/shared/telemetry"
)

// Service contains business logic for ranking runs.
type Service struct {
	Repo       Repo
	Resumes    resumes.ResumesRepo
	Scorer     llm.Scorer
	BatchSize  int
	BatchDelay time.Duration
}

// Rank scores every stored resume against the job prompt and persists the
// ranked outcome as a new analysis. The run is all-or-nothing: a scoring
// failure leaves no partial analysis behind, and any previously stored
// analysis remains the latest.
func (s *Service) Rank(ctx context.Context, userId, jobPrompt string) (Analysis, []RankedResult, error) {
	jobPrompt = strings.TrimSpace(jobPrompt)
	if jobPrompt == "" {
		return Analysis{}, nil, ErrEmptyPrompt
	}
	if userId == "" {
		return Analysis{}, nil, errors.New("user id required")
	}

	pool, err := s.Resumes.ListByUser(ctx, userId)
	if err != nil {
		return Analysis{}, nil, err
	}
	if len(pool) == 0 {
		return Analysis{}, nil, ErrNoResumes
	}

	analysisID := uuid.NewString()
	began := time.Now()
	metrics.IncRankStarted()
	telemetry.Info("rank.started", map[string]any{
		"analysis_id": analysisID,
		"user_id":     userId,
		"resumes":     len(pool),
	})

	scheduler := newBatchScheduler(newRetryingScorer(s.Scorer, analysisID), s.BatchSize, s.BatchDelay)
	scores, err := scheduler.ScoreAll(ctx, pool, jobPrompt)
	if err != nil {
		metrics.IncRankFailed()
		telemetry.Error("rank.failed", map[string]any{
			"analysis_id": analysisID,
			"user_id":     userId,
			"error":       sanitizeError(err),
		})
		return Analysis{}, nil, err
	}

	analysis := Analysis{
		ID:        analysisID,
		UserID:    userId,
		JobPrompt: jobPrompt,
		CreatedAt: time.Now().UTC(),
	}
	results := rankScores(pool, scores)
	for i := range results {
		results[i].ID = uuid.NewString()
		results[i].AnalysisID = analysisID
	}

	if err := s.Repo.CreateWithResults(ctx, analysis, results); err != nil {
		metrics.IncRankFailed()
		telemetry.Error("rank.persist.failed", map[string]any{
			"analysis_id": analysisID,
			"user_id":     userId,
			"error":       sanitizeError(err),
		})
		return Analysis{}, nil, err
	}

	metrics.IncRankCompleted()
	metrics.AddResumesScored(len(results))
	metrics.ObserveRankDurationMs(float64(time.Since(began).Milliseconds()))
	telemetry.Info("rank.completed", map[string]any{
		"analysis_id": analysisID,
		"user_id":     userId,
		"resumes":     len(results),
		"duration_ms": time.Since(began).Milliseconds(),
	})

	return analysis, joinResumes(results, pool), nil
}

// Latest returns a user's most recent analysis with results ordered by rank.
func (s *Service) Latest(ctx context.Context, userId string) (Analysis, []RankedResult, error) {
	if userId == "" {
		return Analysis{}, nil, ErrNotFound
	}
	analysis, results, err := s.Repo.LatestByUser(ctx, userId)
	if err != nil {
		return Analysis{}, nil, err
	}
	pool, err := s.Resumes.ListByUser(ctx, userId)
	if err != nil {
		return Analysis{}, nil, err
	}
	return analysis, joinResumes(results, pool), nil
}

// joinResumes attaches candidate identity to each result. Results whose
// resume has since been cleared keep an empty name.
func joinResumes(results []AnalysisResult, pool []resumes.Resume) []RankedResult {
	byID := make(map[string]resumes.Resume, len(pool))
	for _, res := range pool {
		byID[res.ID] = res
	}
	out := make([]RankedResult, 0, len(results))
	for _, res := range results {
		ranked := RankedResult{AnalysisResult: res}
		if r, ok := byID[res.ResumeID]; ok {
			ranked.CandidateName = r.CandidateName
			ranked.FileName = r.OriginalFileName
		}
		out = append(out, ranked)
	}
	return out
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if runes := []rune(msg); len(runes) > maxLen {
		msg = string(runes[:maxLen])
	}
	return msg
}
