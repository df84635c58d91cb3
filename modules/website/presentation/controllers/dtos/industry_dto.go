package dtos

import (
	"strings"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/industry"
)

type IndustryDTO struct {
	Ordering
	Slug        string `json:"slug" validate:"required,max=100"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Icon        string `json:"icon" validate:"max=100"`
}

func (d IndustryDTO) Entity(existing industry.Industry) (industry.Industry, error) {
	opts := []industry.Option{
		industry.WithActive(d.Active(existing == nil || existing.IsActive())),
		industry.WithDescription(d.Description),
		industry.WithIcon(d.Icon),
	}
	if existing != nil {
		opts = append(opts, industry.WithCreatedAt(existing.CreatedAt()))
	}
	return industry.New(strings.ToLower(strings.TrimSpace(d.Slug)), strings.TrimSpace(d.Name), opts...), nil
}

type PublicIndustry struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type IndustryResponse struct {
	PublicIndustry
	Meta
}

func ToPublicIndustry(i industry.Industry) PublicIndustry {
	return PublicIndustry{
		ID:          i.ID().String(),
		Slug:        i.Slug(),
		Name:        i.Name(),
		Description: i.Description(),
		Icon:        i.Icon(),
	}
}

func ToIndustryResponse(i industry.Industry) IndustryResponse {
	return IndustryResponse{
		PublicIndustry: ToPublicIndustry(i),
		Meta:           meta(i.Order(), i.IsActive(), i.CreatedAt(), i.UpdatedAt()),
	}
}
