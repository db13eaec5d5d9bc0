package analyses

import "time"

// AnalysisResponse is the outward-facing representation of a ranking run.
type AnalysisResponse struct {
	AnalysisID string           `json:"analysisId"`
	JobPrompt  string           `json:"jobPrompt"`
	CreatedAt  time.Time        `json:"createdAt"`
	Results    []ResultResponse `json:"results"`
}

// ResultResponse is one ranked resume within an analysis.
type ResultResponse struct {
	ResumeID      string   `json:"resumeId"`
	CandidateName string   `json:"candidateName,omitempty"`
	FileName      string   `json:"fileName,omitempty"`
	Score         int      `json:"score"`
	Rank          int      `json:"rank"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Summary       string   `json:"summary"`
}

func toResponse(analysis Analysis, results []RankedResult) AnalysisResponse {
	out := AnalysisResponse{
		AnalysisID: analysis.ID,
		JobPrompt:  analysis.JobPrompt,
		CreatedAt:  analysis.CreatedAt,
		Results:    make([]ResultResponse, 0, len(results)),
	}
	for _, res := range results {
		strengths := res.Strengths
		if strengths == nil {
			strengths = []string{}
		}
		weaknesses := res.Weaknesses
		if weaknesses == nil {
			weaknesses = []string{}
		}
		out.Results = append(out.Results, ResultResponse{
			ResumeID:      res.ResumeID,
			CandidateName: res.CandidateName,
			FileName:      res.FileName,
			Score:         res.Score,
			Rank:          res.Rank,
			Strengths:     strengths,
			Weaknesses:    weaknesses,
			Summary:       res.Summary,
		})
	}
	return out
}
