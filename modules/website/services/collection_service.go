package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/industry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/job"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/location"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/partner"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/pricingplan"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/solution"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/teammember"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence"
	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/eventbus"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

type CollectionsConfig struct {
	Stores      persistence.Stores
	Publisher   eventbus.EventBus
	Observer    ordering.Observer
	LockTimeout time.Duration
}

// CollectionService owns one ordering.Manager per ordered collection of the site.
type CollectionService struct {
	Jobs         *ordering.Manager[job.Job]
	Locations    *ordering.Manager[location.Location]
	TeamMembers  *ordering.Manager[teammember.TeamMember]
	Partners     *ordering.Manager[partner.Partner]
	PricingPlans *ordering.Manager[pricingplan.PricingPlan]
	Industries   *ordering.Manager[industry.Industry]
	Solutions    *ordering.Manager[solution.Solution]
}

func options[T ordering.Record[T]](config CollectionsConfig, extra ...ordering.Option[T]) []ordering.Option[T] {
	opts := []ordering.Option[T]{
		ordering.WithPublisher[T](config.Publisher),
		ordering.WithObserver[T](config.Observer),
		ordering.WithLockTimeout[T](config.LockTimeout),
	}
	return append(opts, extra...)
}

func NewCollectionService(config CollectionsConfig) *CollectionService {
	s := config.Stores
	locationOpts := options(config, ordering.WithPublicPriority(location.HeadquartersFirst))
	industryOpts := options(config, ordering.WithWriteCheck(uniqueSlug))
	return &CollectionService{
		Jobs:         ordering.NewManager(job.Collection, s.Jobs, options[job.Job](config)...),
		Locations:    ordering.NewManager(location.Collection, s.Locations, locationOpts...),
		TeamMembers:  ordering.NewManager(teammember.Collection, s.TeamMembers, options[teammember.TeamMember](config)...),
		Partners:     ordering.NewManager(partner.Collection, s.Partners, options[partner.Partner](config)...),
		PricingPlans: ordering.NewManager(pricingplan.Collection, s.PricingPlans, options[pricingplan.PricingPlan](config)...),
		Industries:   ordering.NewManager(industry.Collection, s.Industries, industryOpts...),
		Solutions:    ordering.NewManager(solution.Collection, s.Solutions, options[solution.Solution](config)...),
	}
}

func uniqueSlug(record industry.Industry, siblings []industry.Industry) error {
	if !industry.ValidSlug(record.Slug()) {
		return &ordering.InvalidInputError{Field: "slug", Reason: industry.ErrInvalidSlug.Error()}
	}
	for _, s := range siblings {
		if s.Slug() == record.Slug() {
			return fmt.Errorf("%w: %w", ordering.ErrConflict, industry.ErrSlugTaken)
		}
	}
	return nil
}

// SolutionScope resolves the solutions scope of an industry. Editors reach
// every industry; the public projection only reaches active ones.
func (s *CollectionService) SolutionScope(ctx context.Context, a auth.Context, industryID uuid.UUID, public bool) (ordering.Scope, error) {
	var err error
	if public {
		_, err = s.Industries.GetPublic(ctx, ordering.RootScope(industry.Collection), industryID)
	} else {
		_, err = s.Industries.Get(ctx, a, ordering.RootScope(industry.Collection), industryID)
	}
	if err != nil {
		return ordering.Scope{}, err
	}
	return ordering.ChildScope(solution.Collection, industryID), nil
}

// Normalizer closes order gaps in one scope.
type Normalizer interface {
	Collection() string
	Normalize(ctx context.Context, a auth.Context, scope ordering.Scope) (int, error)
}

// NormalizeAll renumbers the named collections, or all of them when none is
// given, and reports renumbered records per scope. Solutions are normalized
// per industry. Scopes run concurrently; each takes its own scope lock.
func (s *CollectionService) NormalizeAll(ctx context.Context, a auth.Context, collections ...string) (map[string]int, error) {
	wanted := func(name string) bool {
		return len(collections) == 0 || slices.Contains(collections, name)
	}
	for _, name := range collections {
		if !slices.Contains(s.CollectionNames(), name) {
			return nil, &ordering.InvalidInputError{Field: "collection", Reason: fmt.Sprintf("unknown collection %q", name)}
		}
	}

	type task struct {
		normalizer Normalizer
		scope      ordering.Scope
	}
	var tasks []task
	for _, n := range []Normalizer{s.Jobs, s.Locations, s.TeamMembers, s.Partners, s.PricingPlans, s.Industries} {
		if wanted(n.Collection()) {
			tasks = append(tasks, task{normalizer: n, scope: ordering.RootScope(n.Collection())})
		}
	}
	if wanted(solution.Collection) {
		industries, err := s.Industries.List(ctx, a, ordering.RootScope(industry.Collection))
		if err != nil {
			return nil, err
		}
		for _, ind := range industries {
			tasks = append(tasks, task{normalizer: s.Solutions, scope: ordering.ChildScope(solution.Collection, ind.ID())})
		}
	}

	var mu sync.Mutex
	out := make(map[string]int, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, t := range tasks {
		g.Go(func() error {
			changed, err := t.normalizer.Normalize(gctx, a, t.scope)
			if err != nil {
				return err
			}
			mu.Lock()
			out[t.scope.String()] = changed
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// CollectionNames lists every ordered collection.
func (s *CollectionService) CollectionNames() []string {
	return []string{
		job.Collection,
		location.Collection,
		teammember.Collection,
		partner.Collection,
		pricingplan.Collection,
		industry.Collection,
		solution.Collection,
	}
}
