package analyses

import "context"

// Repo defines persistence operations for analyses. CreateWithResults must
// be atomic: either the analysis and every result are stored, or nothing is.
type Repo interface {
	CreateWithResults(ctx context.Context, analysis Analysis, results []AnalysisResult) error
	LatestByUser(ctx context.Context, userId string) (Analysis, []AnalysisResult, error)
}
