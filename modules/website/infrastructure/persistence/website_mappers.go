package persistence

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/industry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/job"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/location"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/partner"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/pricingplan"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/solution"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/teammember"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence/models"
)

func ToDomainJob(m models.Job) job.Job {
	return job.New(
		m.Title,
		job.WithID(m.ID),
		job.WithOrder(m.Order),
		job.WithActive(m.IsActive),
		job.WithDepartment(m.Department),
		job.WithLocation(m.Location),
		job.WithEmploymentType(job.EmploymentType(m.EmploymentType)),
		job.WithSummary(m.Summary),
		job.WithDescription(m.Description),
		job.WithRequirements(m.Requirements),
		job.WithCreatedAt(m.CreatedAt),
		job.WithUpdatedAt(m.UpdatedAt),
	)
}

func jobValues(j job.Job) []any {
	requirements := j.Requirements()
	if requirements == nil {
		requirements = []string{}
	}
	return []any{
		j.Title(), j.Department(), j.Location(), string(j.EmploymentType()),
		j.Summary(), j.Description(), requirements,
	}
}

func ToDomainLocation(m models.Location) location.Location {
	return location.New(
		m.Name,
		location.WithID(m.ID),
		location.WithOrder(m.Order),
		location.WithActive(m.IsActive),
		location.WithAddress(m.City, m.Country, m.Address),
		location.WithContacts(m.Phone, m.Email),
		location.WithMapURL(m.MapURL),
		location.WithHeadquarters(m.IsHeadquarters),
		location.WithCreatedAt(m.CreatedAt),
		location.WithUpdatedAt(m.UpdatedAt),
	)
}

func locationValues(l location.Location) []any {
	return []any{
		l.Name(), l.City(), l.Country(), l.Address(), l.Phone(), l.Email(), l.MapURL(), l.IsHeadquarters(),
	}
}

func ToDomainTeamMember(m models.TeamMember) teammember.TeamMember {
	return teammember.New(
		m.Name,
		m.Role,
		teammember.WithID(m.ID),
		teammember.WithOrder(m.Order),
		teammember.WithActive(m.IsActive),
		teammember.WithBio(m.Bio),
		teammember.WithPhotoKey(m.PhotoKey),
		teammember.WithLinkedInURL(m.LinkedInURL),
		teammember.WithCreatedAt(m.CreatedAt),
		teammember.WithUpdatedAt(m.UpdatedAt),
	)
}

func teamMemberValues(t teammember.TeamMember) []any {
	return []any{t.Name(), t.Role(), t.Bio(), t.PhotoKey(), t.LinkedInURL()}
}

func ToDomainPartner(m models.Partner) partner.Partner {
	return partner.New(
		m.Name,
		partner.WithID(m.ID),
		partner.WithOrder(m.Order),
		partner.WithActive(m.IsActive),
		partner.WithLogoKey(m.LogoKey),
		partner.WithWebsiteURL(m.WebsiteURL),
		partner.WithDescription(m.Description),
		partner.WithCreatedAt(m.CreatedAt),
		partner.WithUpdatedAt(m.UpdatedAt),
	)
}

func partnerValues(p partner.Partner) []any {
	return []any{p.Name(), p.LogoKey(), p.WebsiteURL(), p.Description()}
}

func ToDomainPricingPlan(m models.PricingPlan) (pricingplan.PricingPlan, error) {
	var features []pricingplan.FeatureEntry
	if len(m.Features) > 0 {
		if err := json.Unmarshal(m.Features, &features); err != nil {
			return nil, err
		}
	}
	return pricingplan.New(
		m.Name,
		pricingplan.WithID(m.ID),
		pricingplan.WithOrder(m.Order),
		pricingplan.WithActive(m.IsActive),
		pricingplan.WithTagline(m.Tagline),
		pricingplan.WithPrices(m.Currency, toDecimal(m.MonthlyPrice), toDecimal(m.YearlyPrice)),
		pricingplan.WithFeatures(features),
		pricingplan.WithPopular(m.IsPopular),
		pricingplan.WithCTA(m.CTALabel, m.CTAURL),
		pricingplan.WithCreatedAt(m.CreatedAt),
		pricingplan.WithUpdatedAt(m.UpdatedAt),
	), nil
}

func pricingPlanValues(p pricingplan.PricingPlan) []any {
	features := p.Features()
	if features == nil {
		features = []pricingplan.FeatureEntry{}
	}
	// FeatureEntry values were validated on decode; marshalling cannot fail.
	raw, _ := json.Marshal(features)
	return []any{
		p.Name(), p.Tagline(), p.Currency(),
		toNumeric(p.MonthlyPrice()), toNumeric(p.YearlyPrice()),
		raw, p.IsPopular(), p.CTALabel(), p.CTAURL(),
	}
}

func toDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func ToDomainIndustry(m models.Industry) industry.Industry {
	return industry.New(
		m.Slug,
		m.Name,
		industry.WithID(m.ID),
		industry.WithOrder(m.Order),
		industry.WithActive(m.IsActive),
		industry.WithDescription(m.Description),
		industry.WithIcon(m.Icon),
		industry.WithCreatedAt(m.CreatedAt),
		industry.WithUpdatedAt(m.UpdatedAt),
	)
}

func industryValues(i industry.Industry) []any {
	return []any{i.Slug(), i.Name(), i.Description(), i.Icon()}
}

func ToDomainSolution(m models.Solution) solution.Solution {
	return solution.New(
		m.IndustryID,
		m.Title,
		solution.WithID(m.ID),
		solution.WithOrder(m.Order),
		solution.WithActive(m.IsActive),
		solution.WithSummary(m.Summary),
		solution.WithDescription(m.Description),
		solution.WithCreatedAt(m.CreatedAt),
		solution.WithUpdatedAt(m.UpdatedAt),
	)
}

func solutionValues(s solution.Solution) []any {
	return []any{s.Title(), s.Summary(), s.Description()}
}

func ToDomainPage(m models.Page) page.Page {
	opts := []page.Option{
		page.WithTitle(m.Title),
		page.WithCreatedAt(m.CreatedAt),
		page.WithUpdatedAt(m.UpdatedAt),
	}
	if len(m.Content) > 0 {
		opts = append(opts, page.WithContent(m.Content))
	}
	if m.UpdatedBy.Valid {
		opts = append(opts, page.WithUpdatedBy(uuid.UUID(m.UpdatedBy.Bytes)))
	}
	return page.New(m.Slug, opts...)
}

func ToDBPage(p page.Page) models.Page {
	return models.Page{
		Slug:      p.Slug(),
		Title:     p.Title(),
		Content:   p.Content(),
		UpdatedBy: nullUUID(p.UpdatedBy()),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func ToDomainInquiry(m models.Inquiry) inquiry.Inquiry {
	opts := []inquiry.Option{
		inquiry.WithID(m.ID),
		inquiry.WithPhone(m.Phone),
		inquiry.WithCompany(m.Company),
		inquiry.WithMessage(m.Message),
		inquiry.WithResumeKey(m.ResumeKey),
		inquiry.WithClient(m.IP, m.UserAgent),
		inquiry.WithCreatedAt(m.CreatedAt),
	}
	if m.JobID.Valid {
		opts = append(opts, inquiry.WithJob(uuid.UUID(m.JobID.Bytes)))
	}
	return inquiry.New(m.Name, m.Email, opts...)
}

func ToDBInquiry(i inquiry.Inquiry) models.Inquiry {
	return models.Inquiry{
		ID:        i.ID(),
		Kind:      string(i.Kind()),
		Name:      i.Name(),
		Email:     i.Email(),
		Phone:     i.Phone(),
		Company:   i.Company(),
		Message:   i.Message(),
		JobID:     nullUUID(i.JobID()),
		ResumeKey: i.ResumeKey(),
		IP:        i.IP(),
		UserAgent: i.UserAgent(),
		CreatedAt: i.CreatedAt(),
	}
}

func nullUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}
