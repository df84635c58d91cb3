package dtos

import (
	"strings"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/location"
)

type LocationDTO struct {
	Ordering
	Name           string `json:"name" validate:"required,max=200"`
	City           string `json:"city" validate:"max=100"`
	Country        string `json:"country" validate:"max=100"`
	Address        string `json:"address" validate:"max=500"`
	Phone          string `json:"phone" validate:"max=50"`
	Email          string `json:"email" validate:"omitempty,email"`
	MapURL         string `json:"mapUrl" validate:"omitempty,url"`
	IsHeadquarters bool   `json:"isHeadquarters"`
}

func (d LocationDTO) Entity(existing location.Location) (location.Location, error) {
	opts := []location.Option{
		location.WithActive(d.Active(existing == nil || existing.IsActive())),
		location.WithAddress(strings.TrimSpace(d.City), strings.TrimSpace(d.Country), strings.TrimSpace(d.Address)),
		location.WithContacts(strings.TrimSpace(d.Phone), strings.TrimSpace(d.Email)),
		location.WithMapURL(d.MapURL),
		location.WithHeadquarters(d.IsHeadquarters),
	}
	if existing != nil {
		opts = append(opts, location.WithCreatedAt(existing.CreatedAt()))
	}
	return location.New(strings.TrimSpace(d.Name), opts...), nil
}

type LocationResponse struct {
	PublicLocation
	Meta
}

type PublicLocation struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Country        string `json:"country"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	MapURL         string `json:"mapUrl"`
	IsHeadquarters bool   `json:"isHeadquarters"`
}

func ToPublicLocation(l location.Location) PublicLocation {
	return PublicLocation{
		ID:             l.ID().String(),
		Name:           l.Name(),
		City:           l.City(),
		Country:        l.Country(),
		Address:        l.Address(),
		Phone:          l.Phone(),
		Email:          l.Email(),
		MapURL:         l.MapURL(),
		IsHeadquarters: l.IsHeadquarters(),
	}
}

func ToLocationResponse(l location.Location) LocationResponse {
	return LocationResponse{
		PublicLocation: ToPublicLocation(l),
		Meta:           meta(l.Order(), l.IsActive(), l.CreatedAt(), l.UpdatedAt()),
	}
}
