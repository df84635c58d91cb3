package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	coreservices "github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/industry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/job"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/location"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/partner"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/pricingplan"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/solution"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/teammember"
	"github.com/iota-uz/sitecms/modules/website/presentation/controllers/dtos"
	"github.com/iota-uz/sitecms/modules/website/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

// SolutionsPath nests solutions under their industry.
const SolutionsPath = "industries/{industryId:" + uuidPattern + "}/solutions"

func assetURL(ctx context.Context, uploads *coreservices.UploadService) dtos.AssetURL {
	return func(key string) string {
		if key == "" {
			return ""
		}
		url, err := uploads.URL(ctx, key)
		if err != nil {
			composables.UseLogger(ctx).WithError(err).WithField("key", key).Warn("asset url unavailable")
			return ""
		}
		return url
	}
}

// simple adapts a DTO constructor that needs no request context.
func simple[T any, R any](fn func(T) R) Mapper[T] {
	return func(_ context.Context, record T) any {
		return fn(record)
	}
}

func withAssets[T any, R any](uploads *coreservices.UploadService, fn func(T, dtos.AssetURL) R) Mapper[T] {
	return func(ctx context.Context, record T) any {
		return fn(record, assetURL(ctx, uploads))
	}
}

func solutionScope(collections *services.CollectionService) ScopeResolver {
	return func(r *http.Request, public bool) (ordering.Scope, error) {
		industryID, err := uuid.Parse(mux.Vars(r)["industryId"])
		if err != nil {
			return ordering.Scope{}, &ordering.InvalidInputError{Field: "industryId", Reason: "must be a UUID"}
		}
		return collections.SolutionScope(r.Context(), composables.UseAuth(r.Context()), industryID, public)
	}
}

// NewCollectionControllers builds the controllers of every ordered collection.
func NewCollectionControllers(app application.Application) []application.Controller {
	collections := app.Service(services.CollectionService{}).(*services.CollectionService)
	uploads := app.Service(coreservices.UploadService{}).(*coreservices.UploadService)

	return []application.Controller{
		NewCollectionController[job.Job, dtos.JobDTO](CollectionConfig[job.Job]{
			Manager: collections.Jobs,
			Path:    job.Collection,
			Admin:   simple(dtos.ToJobResponse),
			Public:  simple(dtos.ToPublicJob),
			Search:  job.Job.SearchText,
		}),
		NewCollectionController[location.Location, dtos.LocationDTO](CollectionConfig[location.Location]{
			Manager: collections.Locations,
			Path:    location.Collection,
			Admin:   simple(dtos.ToLocationResponse),
			Public:  simple(dtos.ToPublicLocation),
			Search:  location.Location.SearchText,
		}),
		NewCollectionController[teammember.TeamMember, dtos.TeamMemberDTO](CollectionConfig[teammember.TeamMember]{
			Manager: collections.TeamMembers,
			Path:    teammember.Collection,
			Admin:   withAssets(uploads, dtos.ToTeamMemberResponse),
			Public:  withAssets(uploads, dtos.ToPublicTeamMember),
			Search:  teammember.TeamMember.SearchText,
		}),
		NewCollectionController[partner.Partner, dtos.PartnerDTO](CollectionConfig[partner.Partner]{
			Manager: collections.Partners,
			Path:    partner.Collection,
			Admin:   withAssets(uploads, dtos.ToPartnerResponse),
			Public:  withAssets(uploads, dtos.ToPublicPartner),
			Search:  partner.Partner.SearchText,
		}),
		NewCollectionController[pricingplan.PricingPlan, dtos.PricingPlanDTO](CollectionConfig[pricingplan.PricingPlan]{
			Manager: collections.PricingPlans,
			Path:    pricingplan.Collection,
			Admin:   simple(dtos.ToPricingPlanResponse),
			Public:  simple(dtos.ToPublicPricingPlan),
			Search:  pricingplan.PricingPlan.SearchText,
		}),
		NewCollectionController[industry.Industry, dtos.IndustryDTO](CollectionConfig[industry.Industry]{
			Manager: collections.Industries,
			Path:    industry.Collection,
			Admin:   simple(dtos.ToIndustryResponse),
			Public:  simple(dtos.ToPublicIndustry),
			Search:  industry.Industry.SearchText,
		}),
		NewCollectionController[solution.Solution, dtos.SolutionDTO](CollectionConfig[solution.Solution]{
			Manager: collections.Solutions,
			Path:    SolutionsPath,
			Admin:   simple(dtos.ToSolutionResponse),
			Public:  simple(dtos.ToPublicSolution),
			Search:  solution.Solution.SearchText,
			Scope:   solutionScope(collections),
		}),
	}
}
