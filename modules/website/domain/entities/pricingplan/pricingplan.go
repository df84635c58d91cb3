package pricingplan

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const Collection = "pricing-plans"

type Option func(p *plan)

func WithID(id uuid.UUID) Option {
	return func(p *plan) {
		p.id = id
	}
}

func WithOrder(order int) Option {
	return func(p *plan) {
		p.order = order
	}
}

func WithActive(active bool) Option {
	return func(p *plan) {
		p.isActive = active
	}
}

func WithTagline(tagline string) Option {
	return func(p *plan) {
		p.tagline = tagline
	}
}

func WithPrices(currency string, monthly, yearly decimal.Decimal) Option {
	return func(p *plan) {
		p.currency = currency
		p.monthlyPrice = monthly
		p.yearlyPrice = yearly
	}
}

func WithFeatures(features []FeatureEntry) Option {
	return func(p *plan) {
		p.features = slices.Clone(features)
	}
}

func WithPopular(popular bool) Option {
	return func(p *plan) {
		p.isPopular = popular
	}
}

func WithCTA(label, url string) Option {
	return func(p *plan) {
		p.ctaLabel = label
		p.ctaURL = url
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(p *plan) {
		p.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(p *plan) {
		p.updatedAt = t
	}
}

// PricingPlan is a column of the pricing table. Zero prices mean the plan is
// quoted on request.
type PricingPlan interface {
	ID() uuid.UUID
	Order() int
	IsActive() bool
	Name() string
	Tagline() string
	Currency() string
	MonthlyPrice() decimal.Decimal
	YearlyPrice() decimal.Decimal
	// YearlySavings is the discount of twelve monthly payments over one yearly one.
	YearlySavings() decimal.Decimal
	Features() []FeatureEntry
	IsPopular() bool
	CTALabel() string
	CTAURL() string
	CreatedAt() time.Time
	UpdatedAt() time.Time

	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) PricingPlan
	WithOrder(order int) PricingPlan
	Touch(now time.Time) PricingPlan
	SearchText() string
}

func New(name string, opts ...Option) PricingPlan {
	p := &plan{
		name:         name,
		isActive:     true,
		currency:     "USD",
		monthlyPrice: decimal.Zero,
		yearlyPrice:  decimal.Zero,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type plan struct {
	id           uuid.UUID
	order        int
	isActive     bool
	name         string
	tagline      string
	currency     string
	monthlyPrice decimal.Decimal
	yearlyPrice  decimal.Decimal
	features     []FeatureEntry
	isPopular    bool
	ctaLabel     string
	ctaURL       string
	createdAt    time.Time
	updatedAt    time.Time
}

func (p *plan) ID() uuid.UUID                 { return p.id }
func (p *plan) Order() int                    { return p.order }
func (p *plan) IsActive() bool                { return p.isActive }
func (p *plan) Name() string                  { return p.name }
func (p *plan) Tagline() string               { return p.tagline }
func (p *plan) Currency() string              { return p.currency }
func (p *plan) MonthlyPrice() decimal.Decimal { return p.monthlyPrice }
func (p *plan) YearlyPrice() decimal.Decimal  { return p.yearlyPrice }
func (p *plan) Features() []FeatureEntry      { return slices.Clone(p.features) }
func (p *plan) IsPopular() bool               { return p.isPopular }
func (p *plan) CTALabel() string              { return p.ctaLabel }
func (p *plan) CTAURL() string                { return p.ctaURL }
func (p *plan) CreatedAt() time.Time          { return p.createdAt }
func (p *plan) UpdatedAt() time.Time          { return p.updatedAt }

func (p *plan) YearlySavings() decimal.Decimal {
	if p.yearlyPrice.IsZero() || p.monthlyPrice.IsZero() {
		return decimal.Zero
	}
	savings := p.monthlyPrice.Mul(decimal.NewFromInt(12)).Sub(p.yearlyPrice)
	if savings.IsNegative() {
		return decimal.Zero
	}
	return savings
}

func (p *plan) RecordID() uuid.UUID { return p.id }
func (p *plan) RecordOrder() int    { return p.order }
func (p *plan) RecordActive() bool  { return p.isActive }

func (p *plan) WithID(id uuid.UUID) PricingPlan {
	c := *p
	c.id = id
	return &c
}

func (p *plan) WithOrder(order int) PricingPlan {
	c := *p
	c.order = order
	return &c
}

func (p *plan) Touch(now time.Time) PricingPlan {
	c := *p
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	c.updatedAt = now
	return &c
}

func (p *plan) SearchText() string {
	return p.name + " " + p.tagline
}
