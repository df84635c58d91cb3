package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
)

type InquiryResponse struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Company   string  `json:"company"`
	Message   string  `json:"message"`
	JobID     *string `json:"jobId,omitempty"`
	ResumeURL string  `json:"resumeUrl,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// SubmissionResponse is what the public site gets back after a submission.
type SubmissionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type InquiryPage struct {
	Items  []InquiryResponse `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

func ToInquiryResponse(i inquiry.Inquiry, url AssetURL) InquiryResponse {
	resp := InquiryResponse{
		ID:        i.ID().String(),
		Kind:      string(i.Kind()),
		Name:      i.Name(),
		Email:     i.Email(),
		Phone:     i.Phone(),
		Company:   i.Company(),
		Message:   i.Message(),
		ResumeURL: url(i.ResumeKey()),
		CreatedAt: i.CreatedAt().UTC().Format(time.RFC3339),
	}
	if i.JobID() != uuid.Nil {
		jobID := i.JobID().String()
		resp.JobID = &jobID
	}
	return resp
}

func ToSubmissionResponse(i inquiry.Inquiry) SubmissionResponse {
	return SubmissionResponse{
		ID:        i.ID().String(),
		CreatedAt: i.CreatedAt().UTC().Format(time.RFC3339),
	}
}
