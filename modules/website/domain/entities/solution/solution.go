package solution

import (
	"time"

	"github.com/google/uuid"
)

// Collection names the per-industry scope. Solutions are never listed across industries.
const Collection = "solutions"

type Option func(s *solution)

func WithID(id uuid.UUID) Option {
	return func(s *solution) {
		s.id = id
	}
}

func WithOrder(order int) Option {
	return func(s *solution) {
		s.order = order
	}
}

func WithActive(active bool) Option {
	return func(s *solution) {
		s.isActive = active
	}
}

func WithSummary(summary string) Option {
	return func(s *solution) {
		s.summary = summary
	}
}

func WithDescription(description string) Option {
	return func(s *solution) {
		s.description = description
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(s *solution) {
		s.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(s *solution) {
		s.updatedAt = t
	}
}

type Solution interface {
	ID() uuid.UUID
	IndustryID() uuid.UUID
	Order() int
	IsActive() bool
	Title() string
	Summary() string
	Description() string
	CreatedAt() time.Time
	UpdatedAt() time.Time

	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) Solution
	WithOrder(order int) Solution
	Touch(now time.Time) Solution
	SearchText() string
}

func New(industryID uuid.UUID, title string, opts ...Option) Solution {
	s := &solution{
		industryID: industryID,
		title:      title,
		isActive:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type solution struct {
	id          uuid.UUID
	industryID  uuid.UUID
	order       int
	isActive    bool
	title       string
	summary     string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func (s *solution) ID() uuid.UUID         { return s.id }
func (s *solution) IndustryID() uuid.UUID { return s.industryID }
func (s *solution) Order() int            { return s.order }
func (s *solution) IsActive() bool        { return s.isActive }
func (s *solution) Title() string         { return s.title }
func (s *solution) Summary() string       { return s.summary }
func (s *solution) Description() string   { return s.description }
func (s *solution) CreatedAt() time.Time  { return s.createdAt }
func (s *solution) UpdatedAt() time.Time  { return s.updatedAt }

func (s *solution) RecordID() uuid.UUID { return s.id }
func (s *solution) RecordOrder() int    { return s.order }
func (s *solution) RecordActive() bool  { return s.isActive }

func (s *solution) WithID(id uuid.UUID) Solution {
	c := *s
	c.id = id
	return &c
}

func (s *solution) WithOrder(order int) Solution {
	c := *s
	c.order = order
	return &c
}

func (s *solution) Touch(now time.Time) Solution {
	c := *s
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}

func (s *solution) SearchText() string {
	return s.title + " " + s.summary
}
