package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/industry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/job"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/location"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/partner"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/pricingplan"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/solution"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/teammember"
	"github.com/iota-uz/sitecms/pkg/ordering"
	"github.com/iota-uz/sitecms/pkg/ordering/memstore"
	"github.com/iota-uz/sitecms/pkg/ordering/pgstore"
)

// Stores bundles the backing store of every ordered collection.
type Stores struct {
	Jobs         ordering.Store[job.Job]
	Locations    ordering.Store[location.Location]
	TeamMembers  ordering.Store[teammember.TeamMember]
	Partners     ordering.Store[partner.Partner]
	PricingPlans ordering.Store[pricingplan.PricingPlan]
	Industries   ordering.Store[industry.Industry]
	Solutions    ordering.Store[solution.Solution]
}

// NewPostgresStores maps every collection onto its website_* table. Solutions
// are removed with their industry by the foreign key.
func NewPostgresStores() Stores {
	return Stores{
		Jobs:         pgstore.MustNew(JobsTable),
		Locations:    pgstore.MustNew(LocationsTable),
		TeamMembers:  pgstore.MustNew(TeamMembersTable),
		Partners:     pgstore.MustNew(PartnersTable),
		PricingPlans: pgstore.MustNew(PricingPlansTable),
		Industries:   pgstore.MustNew(IndustriesTable),
		Solutions:    pgstore.MustNew(SolutionsTable),
	}
}

// NewMemoryStores returns process-local stores with the industry to solution
// cascade wired as a delete hook.
func NewMemoryStores() Stores {
	industries := memstore.New[industry.Industry]()
	solutions := memstore.New[solution.Solution]()
	industries.OnDelete(func(ctx context.Context, _ ordering.Scope, id uuid.UUID) {
		solutions.DeleteScope(ctx, ordering.ChildScope(solution.Collection, id))
	})
	return Stores{
		Jobs:         memstore.New[job.Job](),
		Locations:    memstore.New[location.Location](),
		TeamMembers:  memstore.New[teammember.TeamMember](),
		Partners:     memstore.New[partner.Partner](),
		PricingPlans: memstore.New[pricingplan.PricingPlan](),
		Industries:   industries,
		Solutions:    solutions,
	}
}
