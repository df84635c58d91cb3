package dtos

import (
	"time"
)

// Ordering carries the fields every collection payload may set. Order is
// only honoured when present: creates append otherwise and updates keep the
// stored position.
type Ordering struct {
	Order    *int  `json:"order" validate:"omitempty,min=0"`
	IsActive *bool `json:"isActive"`
}

func (o Ordering) ExplicitOrder() *int {
	return o.Order
}

// Active returns the requested flag, or fallback when the payload omits it.
func (o Ordering) Active(fallback bool) bool {
	if o.IsActive == nil {
		return fallback
	}
	return *o.IsActive
}

// Meta is the administrative part of every admin response. The id comes
// from the embedded public projection.
type Meta struct {
	Order     int    `json:"order"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func meta(order int, active bool, createdAt, updatedAt time.Time) Meta {
	return Meta{
		Order:     order,
		IsActive:  active,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
