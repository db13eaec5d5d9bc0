package resumes

import "time"

// Resume is a stored resume with its extracted text and candidate identity.
type Resume struct {
	ID               string
	UserID           string
	CandidateName    string
	Email            string
	Phone            string
	ExtractedText    string
	OriginalFileName string
	FileType         string
	Source           string
	StorageKey       string
	FetchedAt        time.Time
}

// Source values for how a resume entered the system.
const (
	SourceUpload = "upload"
	SourceText   = "text"
)
