package inquiry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

type Kind string

const (
	KindContact     Kind = "contact"
	KindApplication Kind = "application"
)

func (k Kind) IsValid() bool {
	return k == KindContact || k == KindApplication
}

type FindParams struct {
	Kind   Kind
	JobID  uuid.UUID
	Limit  int
	Offset int
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Inquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (Inquiry, error)
	Create(ctx context.Context, i Inquiry) (Inquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Option func(i *inquiry)

func WithID(id uuid.UUID) Option {
	return func(i *inquiry) {
		i.id = id
	}
}

func WithPhone(phone string) Option {
	return func(i *inquiry) {
		i.phone = phone
	}
}

func WithCompany(company string) Option {
	return func(i *inquiry) {
		i.company = company
	}
}

func WithMessage(message string) Option {
	return func(i *inquiry) {
		i.message = message
	}
}

// WithJob marks the inquiry as an application for jobID.
func WithJob(jobID uuid.UUID) Option {
	return func(i *inquiry) {
		i.kind = KindApplication
		i.jobID = jobID
	}
}

func WithResumeKey(key string) Option {
	return func(i *inquiry) {
		i.resumeKey = key
	}
}

func WithClient(ip, userAgent string) Option {
	return func(i *inquiry) {
		i.ip = ip
		i.userAgent = userAgent
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(i *inquiry) {
		i.createdAt = t
	}
}

// Inquiry is a message left through the contact form or a job application.
type Inquiry interface {
	ID() uuid.UUID
	Kind() Kind
	Name() string
	Email() string
	Phone() string
	Company() string
	Message() string
	JobID() uuid.UUID
	ResumeKey() string
	IP() string
	UserAgent() string
	CreatedAt() time.Time
}

func New(name, email string, opts ...Option) Inquiry {
	i := &inquiry{
		id:        uuid.New(),
		kind:      KindContact,
		name:      name,
		email:     email,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type inquiry struct {
	id        uuid.UUID
	kind      Kind
	name      string
	email     string
	phone     string
	company   string
	message   string
	jobID     uuid.UUID
	resumeKey string
	ip        string
	userAgent string
	createdAt time.Time
}

func (i *inquiry) ID() uuid.UUID        { return i.id }
func (i *inquiry) Kind() Kind           { return i.kind }
func (i *inquiry) Name() string         { return i.name }
func (i *inquiry) Email() string        { return i.email }
func (i *inquiry) Phone() string        { return i.phone }
func (i *inquiry) Company() string      { return i.company }
func (i *inquiry) Message() string      { return i.message }
func (i *inquiry) JobID() uuid.UUID     { return i.jobID }
func (i *inquiry) ResumeKey() string    { return i.resumeKey }
func (i *inquiry) IP() string           { return i.ip }
func (i *inquiry) UserAgent() string    { return i.userAgent }
func (i *inquiry) CreatedAt() time.Time { return i.createdAt }
