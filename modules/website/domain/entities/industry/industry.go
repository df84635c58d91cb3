package industry

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

const Collection = "industries"

var (
	ErrInvalidSlug = errors.New("slug must be lowercase letters, digits and dashes")
	ErrSlugTaken   = errors.New("slug is already used by another industry")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

type Option func(i *industry)

func WithID(id uuid.UUID) Option {
	return func(i *industry) {
		i.id = id
	}
}

func WithOrder(order int) Option {
	return func(i *industry) {
		i.order = order
	}
}

func WithActive(active bool) Option {
	return func(i *industry) {
		i.isActive = active
	}
}

func WithDescription(description string) Option {
	return func(i *industry) {
		i.description = description
	}
}

func WithIcon(icon string) Option {
	return func(i *industry) {
		i.icon = icon
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(i *industry) {
		i.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(i *industry) {
		i.updatedAt = t
	}
}

// Industry groups the solutions shown on the solutions page. Deleting an
// industry deletes its solutions.
type Industry interface {
	ID() uuid.UUID
	Order() int
	IsActive() bool
	Slug() string
	Name() string
	Description() string
	Icon() string
	CreatedAt() time.Time
	UpdatedAt() time.Time

	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) Industry
	WithOrder(order int) Industry
	Touch(now time.Time) Industry
	SearchText() string
}

func New(slug, name string, opts ...Option) Industry {
	i := &industry{
		slug:     slug,
		name:     name,
		isActive: true,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type industry struct {
	id          uuid.UUID
	order       int
	isActive    bool
	slug        string
	name        string
	description string
	icon        string
	createdAt   time.Time
	updatedAt   time.Time
}

func (i *industry) ID() uuid.UUID        { return i.id }
func (i *industry) Order() int           { return i.order }
func (i *industry) IsActive() bool       { return i.isActive }
func (i *industry) Slug() string         { return i.slug }
func (i *industry) Name() string         { return i.name }
func (i *industry) Description() string  { return i.description }
func (i *industry) Icon() string         { return i.icon }
func (i *industry) CreatedAt() time.Time { return i.createdAt }
func (i *industry) UpdatedAt() time.Time { return i.updatedAt }

func (i *industry) RecordID() uuid.UUID { return i.id }
func (i *industry) RecordOrder() int    { return i.order }
func (i *industry) RecordActive() bool  { return i.isActive }

func (i *industry) WithID(id uuid.UUID) Industry {
	c := *i
	c.id = id
	return &c
}

func (i *industry) WithOrder(order int) Industry {
	c := *i
	c.order = order
	return &c
}

func (i *industry) Touch(now time.Time) Industry {
	c := *i
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}

func (i *industry) SearchText() string {
	return i.name + " " + i.slug
}
