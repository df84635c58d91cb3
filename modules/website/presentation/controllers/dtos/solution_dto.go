package dtos

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/solution"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

// SolutionDTO carries no industry in its body. The controller binds the
// scope from the route before Entity is called.
type SolutionDTO struct {
	Ordering
	Title       string `json:"title" validate:"required,max=200"`
	Summary     string `json:"summary" validate:"max=500"`
	Description string `json:"description" validate:"max=20000"`

	industryID uuid.UUID
}

func (d *SolutionDTO) BindScope(scope ordering.Scope) {
	d.industryID = scope.Parent
}

func (d SolutionDTO) Entity(existing solution.Solution) (solution.Solution, error) {
	opts := []solution.Option{
		solution.WithActive(d.Active(existing == nil || existing.IsActive())),
		solution.WithSummary(d.Summary),
		solution.WithDescription(d.Description),
	}
	industryID := d.industryID
	if existing != nil {
		industryID = existing.IndustryID()
		opts = append(opts, solution.WithCreatedAt(existing.CreatedAt()))
	}
	return solution.New(industryID, strings.TrimSpace(d.Title), opts...), nil
}

type PublicSolution struct {
	ID          string `json:"id"`
	IndustryID  string `json:"industryId"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type SolutionResponse struct {
	PublicSolution
	Meta
}

func ToPublicSolution(s solution.Solution) PublicSolution {
	return PublicSolution{
		ID:          s.ID().String(),
		IndustryID:  s.IndustryID().String(),
		Title:       s.Title(),
		Summary:     s.Summary(),
		Description: s.Description(),
	}
}

func ToSolutionResponse(s solution.Solution) SolutionResponse {
	return SolutionResponse{
		PublicSolution: ToPublicSolution(s),
		Meta:           meta(s.Order(), s.IsActive(), s.CreatedAt(), s.UpdatedAt()),
	}
}
