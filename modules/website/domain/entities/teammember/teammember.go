package teammember

import (
	"time"

	"github.com/google/uuid"
)

const Collection = "team-members"

type Option func(m *member)

func WithID(id uuid.UUID) Option {
	return func(m *member) {
		m.id = id
	}
}

func WithOrder(order int) Option {
	return func(m *member) {
		m.order = order
	}
}

func WithActive(active bool) Option {
	return func(m *member) {
		m.isActive = active
	}
}

func WithBio(bio string) Option {
	return func(m *member) {
		m.bio = bio
	}
}

// WithPhotoKey sets the blob key of the portrait, as returned by the upload endpoint.
func WithPhotoKey(key string) Option {
	return func(m *member) {
		m.photoKey = key
	}
}

func WithLinkedInURL(url string) Option {
	return func(m *member) {
		m.linkedinURL = url
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(m *member) {
		m.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(m *member) {
		m.updatedAt = t
	}
}

type TeamMember interface {
	ID() uuid.UUID
	Order() int
	IsActive() bool
	Name() string
	Role() string
	Bio() string
	PhotoKey() string
	LinkedInURL() string
	CreatedAt() time.Time
	UpdatedAt() time.Time

	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) TeamMember
	WithOrder(order int) TeamMember
	Touch(now time.Time) TeamMember
	SearchText() string
}

func New(name, role string, opts ...Option) TeamMember {
	m := &member{
		name:     name,
		role:     role,
		isActive: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type member struct {
	id          uuid.UUID
	order       int
	isActive    bool
	name        string
	role        string
	bio         string
	photoKey    string
	linkedinURL string
	createdAt   time.Time
	updatedAt   time.Time
}

func (m *member) ID() uuid.UUID        { return m.id }
func (m *member) Order() int           { return m.order }
func (m *member) IsActive() bool       { return m.isActive }
func (m *member) Name() string         { return m.name }
func (m *member) Role() string         { return m.role }
func (m *member) Bio() string          { return m.bio }
func (m *member) PhotoKey() string     { return m.photoKey }
func (m *member) LinkedInURL() string  { return m.linkedinURL }
func (m *member) CreatedAt() time.Time { return m.createdAt }
func (m *member) UpdatedAt() time.Time { return m.updatedAt }

func (m *member) RecordID() uuid.UUID { return m.id }
func (m *member) RecordOrder() int    { return m.order }
func (m *member) RecordActive() bool  { return m.isActive }

func (m *member) WithID(id uuid.UUID) TeamMember {
	c := *m
	c.id = id
	return &c
}

func (m *member) WithOrder(order int) TeamMember {
	c := *m
	c.order = order
	return &c
}

func (m *member) Touch(now time.Time) TeamMember {
	c := *m
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}

func (m *member) SearchText() string {
	return m.name + " " + m.role
}
