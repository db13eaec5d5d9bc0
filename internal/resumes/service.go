package resumes

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumerank/internal/candidate"
	"resumerank/internal/extract"
	"resumerank/internal/shared/storage/object"
	"resumerank/internal/shared/telemetry"
)

// Service contains business logic for resumes.
type Service struct {
	Repo       ResumesRepo
	Store      object.ObjectStore // optional; uploads are not archived when nil
	Candidates *candidate.Extractor
}

// Upload extracts text from the uploaded file, resolves candidate identity,
// archives the original, and records the resume. Files that yield no text
// are rejected before anything is stored.
func (s *Service) Upload(ctx context.Context, userId, fileName, declaredType string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, err
	}

	text, err := extract.Text(data, declaredType, fileName)
	if err != nil {
		return Resume{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Resume{}, ErrEmptyText
	}

	info := s.Candidates.Extract(ctx, text)
	name := info.Name
	if name == "" {
		name = candidate.UnknownName
	}

	var storageKey string
	if s.Store != nil {
		key, err := s.Store.Save(ctx, userId, fileName, bytes.NewReader(data))
		if err != nil {
			// Archival is best-effort: the extracted text is the record.
			telemetry.Warn("resumes.archive.failed", map[string]any{
				"user_id": userId,
				"error":   err.Error(),
			})
		} else {
			storageKey = key
		}
	}

	res := Resume{
		ID:               uuid.NewString(),
		UserID:           userId,
		CandidateName:    name,
		Email:            info.Email,
		Phone:            info.Phone,
		ExtractedText:    text,
		OriginalFileName: fileName,
		FileType:         extract.NormalizedType(declaredType, fileName),
		Source:           SourceUpload,
		StorageKey:       storageKey,
		FetchedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

// AddText records resume content supplied as plain text.
func (s *Service) AddText(ctx context.Context, userId, fileName, text string) (Resume, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Resume{}, ErrEmptyText
	}
	if fileName == "" {
		fileName = "pasted-resume.txt"
	}

	info := s.Candidates.Extract(ctx, text)
	name := info.Name
	if name == "" {
		name = candidate.UnknownName
	}

	res := Resume{
		ID:               uuid.NewString(),
		UserID:           userId,
		CandidateName:    name,
		Email:            info.Email,
		Phone:            info.Phone,
		ExtractedText:    text,
		OriginalFileName: fileName,
		FileType:         "text",
		Source:           SourceText,
		FetchedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

// OpenFile streams the archived original file for one of the user's resumes.
// Resumes added as plain text (or whose archival failed) have no file.
func (s *Service) OpenFile(ctx context.Context, userId, resumeID string) (io.ReadCloser, Resume, error) {
	if userId == "" || resumeID == "" {
		return nil, Resume{}, ErrInvalidInput
	}
	list, err := s.Repo.ListByUser(ctx, userId)
	if err != nil {
		return nil, Resume{}, err
	}
	for _, res := range list {
		if res.ID != resumeID {
			continue
		}
		if s.Store == nil || res.StorageKey == "" {
			return nil, Resume{}, ErrNotFound
		}
		rc, err := s.Store.Open(ctx, res.StorageKey)
		if err != nil {
			return nil, Resume{}, err
		}
		return rc, res, nil
	}
	return nil, Resume{}, ErrNotFound
}

// List returns a user's resumes, newest first.
func (s *Service) List(ctx context.Context, userId string) ([]Resume, error) {
	if userId == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userId)
}

// Clear removes all of a user's resumes.
func (s *Service) Clear(ctx context.Context, userId string) (int, error) {
	if userId == "" {
		return 0, ErrInvalidInput
	}
	return s.Repo.DeleteByUser(ctx, userId)
}
