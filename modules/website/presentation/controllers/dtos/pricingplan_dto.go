package dtos

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/pricingplan"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

type PricingPlanDTO struct {
	Ordering
	Name         string                     `json:"name" validate:"required,max=100"`
	Tagline      string                     `json:"tagline" validate:"max=300"`
	Currency     string                     `json:"currency" validate:"omitempty,iso4217"`
	MonthlyPrice decimal.NullDecimal        `json:"monthlyPrice"`
	YearlyPrice  decimal.NullDecimal        `json:"yearlyPrice"`
	Features     []pricingplan.FeatureEntry `json:"features" validate:"max=100"`
	IsPopular    bool                       `json:"isPopular"`
	CTALabel     string                     `json:"ctaLabel" validate:"max=100"`
	CTAURL       string                     `json:"ctaUrl" validate:"max=500"`
}

func price(field string, d decimal.NullDecimal) (decimal.Decimal, error) {
	if !d.Valid {
		return decimal.Zero, nil
	}
	if d.Decimal.IsNegative() {
		return decimal.Zero, &ordering.InvalidInputError{Field: field, Reason: "must not be negative"}
	}
	if d.Decimal.Exponent() < -2 {
		return decimal.Zero, &ordering.InvalidInputError{Field: field, Reason: "must have at most two decimal places"}
	}
	return d.Decimal, nil
}

func (d PricingPlanDTO) Entity(existing pricingplan.PricingPlan) (pricingplan.PricingPlan, error) {
	monthly, err := price("monthlyPrice", d.MonthlyPrice)
	if err != nil {
		return nil, err
	}
	yearly, err := price("yearlyPrice", d.YearlyPrice)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(d.Currency)
	if currency == "" {
		currency = "USD"
	}
	opts := []pricingplan.Option{
		pricingplan.WithActive(d.Active(existing == nil || existing.IsActive())),
		pricingplan.WithTagline(d.Tagline),
		pricingplan.WithPrices(currency, monthly, yearly),
		pricingplan.WithFeatures(d.Features),
		pricingplan.WithPopular(d.IsPopular),
		pricingplan.WithCTA(d.CTALabel, d.CTAURL),
	}
	if existing != nil {
		opts = append(opts, pricingplan.WithCreatedAt(existing.CreatedAt()))
	}
	return pricingplan.New(strings.TrimSpace(d.Name), opts...), nil
}

type PublicPricingPlan struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	Tagline       string                     `json:"tagline"`
	Currency      string                     `json:"currency"`
	MonthlyPrice  string                     `json:"monthlyPrice"`
	YearlyPrice   string                     `json:"yearlyPrice"`
	YearlySavings string                     `json:"yearlySavings"`
	Features      []pricingplan.FeatureEntry `json:"features"`
	IsPopular     bool                       `json:"isPopular"`
	CTALabel      string                     `json:"ctaLabel"`
	CTAURL        string                     `json:"ctaUrl"`
}

type PricingPlanResponse struct {
	PublicPricingPlan
	Meta
}

func ToPublicPricingPlan(p pricingplan.PricingPlan) PublicPricingPlan {
	features := p.Features()
	if features == nil {
		features = []pricingplan.FeatureEntry{}
	}
	return PublicPricingPlan{
		ID:            p.ID().String(),
		Name:          p.Name(),
		Tagline:       p.Tagline(),
		Currency:      p.Currency(),
		MonthlyPrice:  p.MonthlyPrice().StringFixed(2),
		YearlyPrice:   p.YearlyPrice().StringFixed(2),
		YearlySavings: p.YearlySavings().StringFixed(2),
		Features:      features,
		IsPopular:     p.IsPopular(),
		CTALabel:      p.CTALabel(),
		CTAURL:        p.CTAURL(),
	}
}

func ToPricingPlanResponse(p pricingplan.PricingPlan) PricingPlanResponse {
	return PricingPlanResponse{
		PublicPricingPlan: ToPublicPricingPlan(p),
		Meta:              meta(p.Order(), p.IsActive(), p.CreatedAt(), p.UpdatedAt()),
	}
}
