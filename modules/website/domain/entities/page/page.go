package page

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPageNotFound = errors.New("page not found")

// Known slugs of the marketing site. Editors may create others.
const (
	Home      = "home"
	Pricing   = "pricing"
	Solutions = "solutions"
	Careers   = "careers"
	Contact   = "contact"
)

var DefaultSlugs = []string{Home, Pricing, Solutions, Careers, Contact}

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (Page, error)
	List(ctx context.Context) ([]Page, error)
	Save(ctx context.Context, p Page) (Page, error)
	Delete(ctx context.Context, slug string) error
}

type Option func(p *page)

func WithTitle(title string) Option {
	return func(p *page) {
		p.title = title
	}
}

func WithContent(content json.RawMessage) Option {
	return func(p *page) {
		p.content = bytes.Clone(content)
	}
}

func WithUpdatedBy(id uuid.UUID) Option {
	return func(p *page) {
		p.updatedBy = id
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(p *page) {
		p.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(p *page) {
		p.updatedAt = t
	}
}

// Page holds the free-form content of one public page. Content is a JSON
// object whose shape is owned by the frontend.
type Page interface {
	Slug() string
	Title() string
	Content() json.RawMessage
	UpdatedBy() uuid.UUID
	CreatedAt() time.Time
	UpdatedAt() time.Time

	Edit(title string, content json.RawMessage, editor uuid.UUID, now time.Time) Page
}

func New(slug string, opts ...Option) Page {
	p := &page{
		slug:    slug,
		content: json.RawMessage(`{}`),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type page struct {
	slug      string
	title     string
	content   json.RawMessage
	updatedBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func (p *page) Slug() string             { return p.slug }
func (p *page) Title() string            { return p.title }
func (p *page) Content() json.RawMessage { return bytes.Clone(p.content) }
func (p *page) UpdatedBy() uuid.UUID     { return p.updatedBy }
func (p *page) CreatedAt() time.Time     { return p.createdAt }
func (p *page) UpdatedAt() time.Time     { return p.updatedAt }

func (p *page) Edit(title string, content json.RawMessage, editor uuid.UUID, now time.Time) Page {
	c := *p
	c.title = title
	c.content = bytes.Clone(content)
	c.updatedBy = editor
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}
