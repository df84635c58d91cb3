package dtos

import (
	"strings"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/teammember"
)

// AssetURL turns a blob key into a URL the browser can load. Empty keys stay empty.
type AssetURL func(key string) string

type TeamMemberDTO struct {
	Ordering
	Name        string `json:"name" validate:"required,max=200"`
	Role        string `json:"role" validate:"required,max=200"`
	Bio         string `json:"bio" validate:"max=5000"`
	PhotoKey    string `json:"photoKey" validate:"max=300"`
	LinkedInURL string `json:"linkedinUrl" validate:"omitempty,url"`
}

func (d TeamMemberDTO) Entity(existing teammember.TeamMember) (teammember.TeamMember, error) {
	opts := []teammember.Option{
		teammember.WithActive(d.Active(existing == nil || existing.IsActive())),
		teammember.WithBio(d.Bio),
		teammember.WithPhotoKey(d.PhotoKey),
		teammember.WithLinkedInURL(d.LinkedInURL),
	}
	if existing != nil {
		opts = append(opts, teammember.WithCreatedAt(existing.CreatedAt()))
	}
	return teammember.New(strings.TrimSpace(d.Name), strings.TrimSpace(d.Role), opts...), nil
}

type PublicTeamMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Bio         string `json:"bio"`
	PhotoURL    string `json:"photoUrl"`
	LinkedInURL string `json:"linkedinUrl"`
}

type TeamMemberResponse struct {
	PublicTeamMember
	Meta
	PhotoKey string `json:"photoKey"`
}

func ToPublicTeamMember(m teammember.TeamMember, url AssetURL) PublicTeamMember {
	return PublicTeamMember{
		ID:          m.ID().String(),
		Name:        m.Name(),
		Role:        m.Role(),
		Bio:         m.Bio(),
		PhotoURL:    url(m.PhotoKey()),
		LinkedInURL: m.LinkedInURL(),
	}
}

func ToTeamMemberResponse(m teammember.TeamMember, url AssetURL) TeamMemberResponse {
	return TeamMemberResponse{
		PublicTeamMember: ToPublicTeamMember(m, url),
		Meta:             meta(m.Order(), m.IsActive(), m.CreatedAt(), m.UpdatedAt()),
		PhotoKey:         m.PhotoKey(),
	}
}
