package analyses

import (
	"context"
	"sync"
)

type memoryAnalysis struct {
	analysis Analysis
	results  []AnalysisResult
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]memoryAnalysis // userId -> analyses, append order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]memoryAnalysis),
	}
}

// CreateWithResults stores the analysis and its results under one lock.
func (r *MemoryRepo) CreateWithResults(ctx context.Context, analysis Analysis, results []AnalysisResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]AnalysisResult, len(results))
	copy(stored, results)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[analysis.UserID] = append(r.data[analysis.UserID], memoryAnalysis{
		analysis: analysis,
		results:  stored,
	})
	return nil
}

// LatestByUser returns the most recent analysis and its results.
func (r *MemoryRepo) LatestByUser(ctx context.Context, userId string) (Analysis, []AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.data[userId]
	if len(entries) == 0 {
		return Analysis{}, nil, ErrNotFound
	}
	latest := entries[len(entries)-1]
	results := make([]AnalysisResult, len(latest.results))
	copy(results, latest.results)
	return latest.analysis, results, nil
}

var _ Repo = (*MemoryRepo)(nil)
