package resumes

import "context"

// ResumesRepo defines persistence operations for resumes.
type ResumesRepo interface {
	Create(ctx context.Context, r Resume) error
	ListByUser(ctx context.Context, userId string) ([]Resume, error)
	DeleteByUser(ctx context.Context, userId string) (int, error)
}
