package job

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const Collection = "jobs"

type EmploymentType string

const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
)

func (t EmploymentType) IsValid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship:
		return true
	}
	return false
}

type Option func(j *job)

func WithID(id uuid.UUID) Option {
	return func(j *job) {
		j.id = id
	}
}

func WithOrder(order int) Option {
	return func(j *job) {
		j.order = order
	}
}

func WithActive(active bool) Option {
	return func(j *job) {
		j.isActive = active
	}
}

func WithDepartment(department string) Option {
	return func(j *job) {
		j.department = department
	}
}

func WithLocation(location string) Option {
	return func(j *job) {
		j.location = location
	}
}

func WithEmploymentType(t EmploymentType) Option {
	return func(j *job) {
		j.employmentType = t
	}
}

func WithSummary(summary string) Option {
	return func(j *job) {
		j.summary = summary
	}
}

func WithDescription(description string) Option {
	return func(j *job) {
		j.description = description
	}
}

func WithRequirements(requirements []string) Option {
	return func(j *job) {
		j.requirements = slices.Clone(requirements)
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(j *job) {
		j.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(j *job) {
		j.updatedAt = t
	}
}

// Job is an open position listed on the careers page.
type Job interface {
	ID() uuid.UUID
	Order() int
	IsActive() bool
	Title() string
	Department() string
	Location() string
	EmploymentType() EmploymentType
	Summary() string
	Description() string
	Requirements() []string
	CreatedAt() time.Time
	UpdatedAt() time.Time

	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) Job
	WithOrder(order int) Job
	Touch(now time.Time) Job
	SearchText() string
}

func New(title string, opts ...Option) Job {
	j := &job{
		title:          title,
		isActive:       true,
		employmentType: FullTime,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

type job struct {
	id             uuid.UUID
	order          int
	isActive       bool
	title          string
	department     string
	location       string
	employmentType EmploymentType
	summary        string
	description    string
	requirements   []string
	createdAt      time.Time
	updatedAt      time.Time
}

func (j *job) ID() uuid.UUID                  { return j.id }
func (j *job) Order() int                     { return j.order }
func (j *job) IsActive() bool                 { return j.isActive }
func (j *job) Title() string                  { return j.title }
func (j *job) Department() string             { return j.department }
func (j *job) Location() string               { return j.location }
func (j *job) EmploymentType() EmploymentType { return j.employmentType }
func (j *job) Summary() string                { return j.summary }
func (j *job) Description() string            { return j.description }
func (j *job) Requirements() []string         { return slices.Clone(j.requirements) }
func (j *job) CreatedAt() time.Time           { return j.createdAt }
func (j *job) UpdatedAt() time.Time           { return j.updatedAt }

func (j *job) RecordID() uuid.UUID { return j.id }
func (j *job) RecordOrder() int    { return j.order }
func (j *job) RecordActive() bool  { return j.isActive }

func (j *job) WithID(id uuid.UUID) Job {
	c := *j
	c.id = id
	return &c
}

func (j *job) WithOrder(order int) Job {
	c := *j
	c.order = order
	return &c
}

func (j *job) Touch(now time.Time) Job {
	c := *j
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}

func (j *job) SearchText() string {
	return strings.Join([]string{j.title, j.department, j.location}, " ")
}
