package dtos

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
)

type PageResponse struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	UpdatedBy *string         `json:"updatedBy,omitempty"`
	UpdatedAt string          `json:"updatedAt"`
}

func ToPageResponse(p page.Page) PageResponse {
	resp := PageResponse{
		Slug:      p.Slug(),
		Title:     p.Title(),
		Content:   p.Content(),
		UpdatedAt: p.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if p.UpdatedBy() != uuid.Nil {
		editor := p.UpdatedBy().String()
		resp.UpdatedBy = &editor
	}
	return resp
}
