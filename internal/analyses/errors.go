package analyses

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrEmptyPrompt = errors.New("job prompt is required")
	ErrNoResumes   = errors.New("no resumes to rank")
)
