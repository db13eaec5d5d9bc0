package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateWithResults inserts the analysis and all results in one transaction.
func (r *PGRepo) CreateWithResults(ctx context.Context, analysis Analysis, results []AnalysisResult) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const analysisQuery = `
INSERT INTO analyses (id, user_id, job_prompt, created_at)
VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, analysisQuery, analysis.ID, analysis.UserID, analysis.JobPrompt, analysis.CreatedAt); err != nil {
		return err
	}

	const resultQuery = `
INSERT INTO analysis_results (id, analysis_id, resume_id, score, rank, strengths, weaknesses, summary)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, res := range results {
		strengths, err := marshalList(res.Strengths)
		if err != nil {
			return err
		}
		weaknesses, err := marshalList(res.Weaknesses)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx,
			resultQuery,
			res.ID,
			res.AnalysisID,
			res.ResumeID,
			res.Score,
			res.Rank,
			strengths,
			weaknesses,
			res.Summary,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LatestByUser returns the most recent analysis and its results ordered by rank.
func (r *PGRepo) LatestByUser(ctx context.Context, userId string) (Analysis, []AnalysisResult, error) {
	const analysisQuery = `
SELECT id, user_id, job_prompt, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`
	var analysis Analysis
	err := r.DB.QueryRowContext(ctx, analysisQuery, userId).Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.JobPrompt,
		&analysis.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, nil, ErrNotFound
		}
		return Analysis{}, nil, err
	}

	const resultsQuery = `
SELECT id, analysis_id, resume_id, score, rank, strengths, weaknesses, summary
FROM analysis_results
WHERE analysis_id = $1
ORDER BY rank`
	rows, err := r.DB.QueryContext(ctx, resultsQuery, analysis.ID)
	if err != nil {
		return Analysis{}, nil, err
	}
	defer rows.Close()

	var results []AnalysisResult
	for rows.Next() {
		var res AnalysisResult
		var strengths, weaknesses []byte
		var summary sql.NullString
		if err := rows.Scan(
			&res.ID,
			&res.AnalysisID,
			&res.ResumeID,
			&res.Score,
			&res.Rank,
			&strengths,
			&weaknesses,
			&summary,
		); err != nil {
			return Analysis{}, nil, err
		}
		if res.Strengths, err = unmarshalList(strengths); err != nil {
			return Analysis{}, nil, fmt.Errorf("strengths for result %s: %w", res.ID, err)
		}
		if res.Weaknesses, err = unmarshalList(weaknesses); err != nil {
			return Analysis{}, nil, fmt.Errorf("weaknesses for result %s: %w", res.ID, err)
		}
		if summary.Valid {
			res.Summary = summary.String
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return Analysis{}, nil, err
	}
	return analysis, results, nil
}

func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func unmarshalList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

var _ Repo = (*PGRepo)(nil)
