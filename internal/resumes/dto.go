package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID         string    `json:"resumeId"`
	CandidateName    string    `json:"candidateName"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	OriginalFileName string    `json:"originalFileName"`
	FileType         string    `json:"fileType"`
	Source           string    `json:"source"`
	TextLength       int       `json:"textLength"`
	FetchedAt        time.Time `json:"fetchedAt"`
}

func toResponse(res Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:         res.ID,
		CandidateName:    res.CandidateName,
		Email:            res.Email,
		Phone:            res.Phone,
		OriginalFileName: res.OriginalFileName,
		FileType:         res.FileType,
		Source:           res.Source,
		TextLength:       len(res.ExtractedText),
		FetchedAt:        res.FetchedAt,
	}
}

func toResponses(list []Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(list))
	for _, res := range list {
		out = append(out, toResponse(res))
	}
	return out
}
