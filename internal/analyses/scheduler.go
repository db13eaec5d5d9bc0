package analyses

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"resumerank/internal/llm"
	"resumerank/internal/resumes"
	"resumerank/internal/shared/metrics"
)

const (
	defaultBatchSize  = 5
	defaultBatchDelay = time.Second
)

// batchScheduler scores resumes in fixed-size batches. Resumes within a
// batch are scored concurrently; batches run strictly one after another with
// a pause between them. A single scoring failure aborts the whole run.
type batchScheduler struct {
	scorer    llm.Scorer
	batchSize int
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

func newBatchScheduler(scorer llm.Scorer, batchSize int, delay time.Duration) *batchScheduler {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if delay < 0 {
		delay = defaultBatchDelay
	}
	return &batchScheduler{
		scorer:    scorer,
		batchSize: batchSize,
		delay:     delay,
		sleep:     sleepCtx,
	}
}

// ScoreAll returns one score per input resume, index-aligned with the input.
// No pause follows the final batch.
func (b *batchScheduler) ScoreAll(ctx context.Context, list []resumes.Resume, jobPrompt string) ([]llm.ResumeScore, error) {
	scores := make([]llm.ResumeScore, len(list))
	errs := make([]error, len(list))

	for start := 0; start < len(list); start += b.batchSize {
		end := start + b.batchSize
		if end > len(list) {
			end = len(list)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				began := time.Now()
				scores[i], errs[i] = b.scorer.ScoreResume(ctx, list[i].ExtractedText, jobPrompt)
				metrics.ObserveScoreDurationMs(float64(time.Since(began).Milliseconds()))
			}(i)
		}
		wg.Wait()

		for i := start; i < end; i++ {
			if errs[i] != nil {
				return nil, fmt.Errorf("scoring resume %s: %w", list[i].ID, errs[i])
			}
		}

		if end < len(list) && b.delay > 0 {
			if err := b.sleep(ctx, b.delay); err != nil {
				return nil, err
			}
		}
	}

	return scores, nil
}

// rankScores orders index-aligned scores by score descending and assigns
// 1-based consecutive ranks. The sort is stable, so resumes with equal
// scores keep their input order.
func rankScores(list []resumes.Resume, scores []llm.ResumeScore) []AnalysisResult {
	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]].Score > scores[idx[b]].Score
	})

	results := make([]AnalysisResult, len(idx))
	for pos, i := range idx {
		results[pos] = AnalysisResult{
			ResumeID:   list[i].ID,
			Score:      scores[i].Score,
			Rank:       pos + 1,
			Strengths:  scores[i].Strengths,
			Weaknesses: scores[i].Weaknesses,
			Summary:    scores[i].Summary,
		}
	}
	return results
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
