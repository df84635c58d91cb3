package persistence

import (
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/industry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/job"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/location"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/partner"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/pricingplan"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/solution"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/teammember"
	"github.com/iota-uz/sitecms/pkg/ordering/pgstore"
)

// scanInto collects a row into the db model M and maps it to the entity.
func scanInto[M any, T any](toDomain func(M) (T, error)) pgx.RowToFunc[T] {
	return func(row pgx.CollectableRow) (T, error) {
		m, err := pgx.RowToStructByName[M](row)
		if err != nil {
			var zero T
			return zero, err
		}
		return toDomain(m)
	}
}

func infallible[M any, T any](fn func(M) T) func(M) (T, error) {
	return func(m M) (T, error) {
		return fn(m), nil
	}
}

var (
	JobsTable = pgstore.Table[job.Job]{
		Name:    "website_jobs",
		Columns: []string{"title", "department", "location", "employment_type", "summary", "description", "requirements"},
		Values:  jobValues,
		Scan:    scanInto(infallible(ToDomainJob)),
	}

	LocationsTable = pgstore.Table[location.Location]{
		Name:    "website_locations",
		Columns: []string{"name", "city", "country", "address", "phone", "email", "map_url", "is_headquarters"},
		Values:  locationValues,
		Scan:    scanInto(infallible(ToDomainLocation)),
	}

	TeamMembersTable = pgstore.Table[teammember.TeamMember]{
		Name:    "website_team_members",
		Columns: []string{"name", "role", "bio", "photo_key", "linkedin_url"},
		Values:  teamMemberValues,
		Scan:    scanInto(infallible(ToDomainTeamMember)),
	}

	PartnersTable = pgstore.Table[partner.Partner]{
		Name:    "website_partners",
		Columns: []string{"name", "logo_key", "website_url", "description"},
		Values:  partnerValues,
		Scan:    scanInto(infallible(ToDomainPartner)),
	}

	PricingPlansTable = pgstore.Table[pricingplan.PricingPlan]{
		Name: "website_pricing_plans",
		Columns: []string{
			"name", "tagline", "currency", "monthly_price", "yearly_price",
			"features", "is_popular", "cta_label", "cta_url",
		},
		Values: pricingPlanValues,
		Scan:   scanInto(ToDomainPricingPlan),
	}

	IndustriesTable = pgstore.Table[industry.Industry]{
		Name:    "website_industries",
		Columns: []string{"slug", "name", "description", "icon"},
		Values:  industryValues,
		Scan:    scanInto(infallible(ToDomainIndustry)),
	}

	SolutionsTable = pgstore.Table[solution.Solution]{
		Name:        "website_solutions",
		ScopeColumn: "industry_id",
		Columns:     []string{"title", "summary", "description"},
		Values:      solutionValues,
		Scan:        scanInto(infallible(ToDomainSolution)),
	}
)
