package dtos

import (
	"strings"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/partner"
)

type PartnerDTO struct {
	Ordering
	Name        string `json:"name" validate:"required,max=200"`
	LogoKey     string `json:"logoKey" validate:"max=300"`
	WebsiteURL  string `json:"websiteUrl" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=2000"`
}

func (d PartnerDTO) Entity(existing partner.Partner) (partner.Partner, error) {
	opts := []partner.Option{
		partner.WithActive(d.Active(existing == nil || existing.IsActive())),
		partner.WithLogoKey(d.LogoKey),
		partner.WithWebsiteURL(d.WebsiteURL),
		partner.WithDescription(d.Description),
	}
	if existing != nil {
		opts = append(opts, partner.WithCreatedAt(existing.CreatedAt()))
	}
	return partner.New(strings.TrimSpace(d.Name), opts...), nil
}

type PublicPartner struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LogoURL     string `json:"logoUrl"`
	WebsiteURL  string `json:"websiteUrl"`
	Description string `json:"description"`
}

type PartnerResponse struct {
	PublicPartner
	Meta
	LogoKey string `json:"logoKey"`
}

func ToPublicPartner(p partner.Partner, url AssetURL) PublicPartner {
	return PublicPartner{
		ID:          p.ID().String(),
		Name:        p.Name(),
		LogoURL:     url(p.LogoKey()),
		WebsiteURL:  p.WebsiteURL(),
		Description: p.Description(),
	}
}

func ToPartnerResponse(p partner.Partner, url AssetURL) PartnerResponse {
	return PartnerResponse{
		PublicPartner: ToPublicPartner(p, url),
		Meta:          meta(p.Order(), p.IsActive(), p.CreatedAt(), p.UpdatedAt()),
		LogoKey:       p.LogoKey(),
	}
}
