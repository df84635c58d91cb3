package partner

import (
	"time"

	"github.com/google/uuid"
)

const Collection = "partners"

type Option func(p *partner)

func WithID(id uuid.UUID) Option {
	return func(p *partner) {
		p.id = id
	}
}

func WithOrder(order int) Option {
	return func(p *partner) {
		p.order = order
	}
}

func WithActive(active bool) Option {
	return func(p *partner) {
		p.isActive = active
	}
}

func WithLogoKey(key string) Option {
	return func(p *partner) {
		p.logoKey = key
	}
}

func WithWebsiteURL(url string) Option {
	return func(p *partner) {
		p.websiteURL = url
	}
}

func WithDescription(description string) Option {
	return func(p *partner) {
		p.description = description
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(p *partner) {
		p.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(p *partner) {
		p.updatedAt = t
	}
}

type Partner interface {
	ID() uuid.UUID
	Order() int
	IsActive() bool
	Name() string
	LogoKey() string
	WebsiteURL() string
	Description() string
	CreatedAt() time.Time
	UpdatedAt() time.Time

	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) Partner
	WithOrder(order int) Partner
	Touch(now time.Time) Partner
	SearchText() string
}

func New(name string, opts ...Option) Partner {
	p := &partner{
		name:     name,
		isActive: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type partner struct {
	id          uuid.UUID
	order       int
	isActive    bool
	name        string
	logoKey     string
	websiteURL  string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func (p *partner) ID() uuid.UUID        { return p.id }
func (p *partner) Order() int           { return p.order }
func (p *partner) IsActive() bool       { return p.isActive }
func (p *partner) Name() string         { return p.name }
func (p *partner) LogoKey() string      { return p.logoKey }
func (p *partner) WebsiteURL() string   { return p.websiteURL }
func (p *partner) Description() string  { return p.description }
func (p *partner) CreatedAt() time.Time { return p.createdAt }
func (p *partner) UpdatedAt() time.Time { return p.updatedAt }

func (p *partner) RecordID() uuid.UUID { return p.id }
func (p *partner) RecordOrder() int    { return p.order }
func (p *partner) RecordActive() bool  { return p.isActive }

func (p *partner) WithID(id uuid.UUID) Partner {
	c := *p
	c.id = id
	return &c
}

func (p *partner) WithOrder(order int) Partner {
	c := *p
	c.order = order
	return &c
}

func (p *partner) Touch(now time.Time) Partner {
	c := *p
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}

func (p *partner) SearchText() string {
	return p.name
}
