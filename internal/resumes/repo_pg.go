package resumes

import (
	"context"
	"database/sql"
)

// PGRepo implements ResumesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    candidate_name,
    email,
    phone,
    extracted_text,
    original_file_name,
    file_type,
    source,
    storage_key,
    fetched_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var email sql.NullString
	if res.Email != "" {
		email = sql.NullString{String: res.Email, Valid: true}
	}
	var phone sql.NullString
	if res.Phone != "" {
		phone = sql.NullString{String: res.Phone, Valid: true}
	}
	var storageKey sql.NullString
	if res.StorageKey != "" {
		storageKey = sql.NullString{String: res.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.CandidateName,
		email,
		phone,
		res.ExtractedText,
		res.OriginalFileName,
		res.FileType,
		res.Source,
		storageKey,
		res.FetchedAt,
	)
	return err
}

// ListByUser lists resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Resume, error) {
	const query = `
SELECT id, user_id, candidate_name, email, phone, extracted_text, original_file_name, file_type, source, storage_key, fetched_at
FROM resumes
WHERE user_id = $1
ORDER BY fetched_at DESC, id`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var res Resume
		var email sql.NullString
		var phone sql.NullString
		var storageKey sql.NullString
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.CandidateName,
			&email,
			&phone,
			&res.ExtractedText,
			&res.OriginalFileName,
			&res.FileType,
			&res.Source,
			&storageKey,
			&res.FetchedAt,
		); err != nil {
			return nil, err
		}
		if email.Valid {
			res.Email = email.String
		}
		if phone.Valid {
			res.Phone = phone.String
		}
		if storageKey.Valid {
			res.StorageKey = storageKey.String
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// DeleteByUser removes all resumes for a user.
func (r *PGRepo) DeleteByUser(ctx context.Context, userId string) (int, error) {
	const query = `DELETE FROM resumes WHERE user_id = $1`
	res, err := r.DB.ExecContext(ctx, query, userId)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	return int(deleted), nil
}

var _ ResumesRepo = (*PGRepo)(nil)
