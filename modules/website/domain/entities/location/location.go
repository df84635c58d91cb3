package location

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const Collection = "locations"

type Option func(l *location)

func WithID(id uuid.UUID) Option {
	return func(l *location) {
		l.id = id
	}
}

func WithOrder(order int) Option {
	return func(l *location) {
		l.order = order
	}
}

func WithActive(active bool) Option {
	return func(l *location) {
		l.isActive = active
	}
}

func WithAddress(city, country, address string) Option {
	return func(l *location) {
		l.city = city
		l.country = country
		l.address = address
	}
}

func WithContacts(phone, email string) Option {
	return func(l *location) {
		l.phone = phone
		l.email = email
	}
}

func WithMapURL(url string) Option {
	return func(l *location) {
		l.mapURL = url
	}
}

func WithHeadquarters(hq bool) Option {
	return func(l *location) {
		l.isHeadquarters = hq
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(l *location) {
		l.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(l *location) {
		l.updatedAt = t
	}
}

// Location is an office shown on the contact page.
type Location interface {
	ID() uuid.UUID
	Order() int
	IsActive() bool
	Name() string
	City() string
	Country() string
	Address() string
	Phone() string
	Email() string
	MapURL() string
	IsHeadquarters() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time

	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) Location
	WithOrder(order int) Location
	Touch(now time.Time) Location
	SearchText() string
}

func New(name string, opts ...Option) Location {
	l := &location{
		name:     name,
		isActive: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// HeadquartersFirst orders headquarters ahead of other offices and treats
// everything else as equal.
func HeadquartersFirst(a, b Location) int {
	switch {
	case a.IsHeadquarters() == b.IsHeadquarters():
		return 0
	case a.IsHeadquarters():
		return -1
	default:
		return 1
	}
}

type location struct {
	id             uuid.UUID
	order          int
	isActive       bool
	name           string
	city           string
	country        string
	address        string
	phone          string
	email          string
	mapURL         string
	isHeadquarters bool
	createdAt      time.Time
	updatedAt      time.Time
}

func (l *location) ID() uuid.UUID        { return l.id }
func (l *location) Order() int           { return l.order }
func (l *location) IsActive() bool       { return l.isActive }
func (l *location) Name() string         { return l.name }
func (l *location) City() string         { return l.city }
func (l *location) Country() string      { return l.country }
func (l *location) Address() string      { return l.address }
func (l *location) Phone() string        { return l.phone }
func (l *location) Email() string        { return l.email }
func (l *location) MapURL() string       { return l.mapURL }
func (l *location) IsHeadquarters() bool { return l.isHeadquarters }
func (l *location) CreatedAt() time.Time { return l.createdAt }
func (l *location) UpdatedAt() time.Time { return l.updatedAt }

func (l *location) RecordID() uuid.UUID { return l.id }
func (l *location) RecordOrder() int    { return l.order }
func (l *location) RecordActive() bool  { return l.isActive }

func (l *location) WithID(id uuid.UUID) Location {
	c := *l
	c.id = id
	return &c
}

func (l *location) WithOrder(order int) Location {
	c := *l
	c.order = order
	return &c
}

func (l *location) Touch(now time.Time) Location {
	c := *l
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}

func (l *location) SearchText() string {
	return strings.Join([]string{l.name, l.city, l.country}, " ")
}
