package dtos

import (
	"strings"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/job"
)

type JobDTO struct {
	Ordering
	Title          string   `json:"title" validate:"required,max=200"`
	Department     string   `json:"department" validate:"max=100"`
	Location       string   `json:"location" validate:"max=100"`
	EmploymentType string   `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship"`
	Summary        string   `json:"summary" validate:"max=500"`
	Description    string   `json:"description" validate:"max=20000"`
	Requirements   []string `json:"requirements" validate:"max=50,dive,required,max=300"`
}

func (d JobDTO) Entity(existing job.Job) (job.Job, error) {
	employment := job.EmploymentType(d.EmploymentType)
	if employment == "" {
		employment = job.FullTime
	}
	opts := []job.Option{
		job.WithActive(d.Active(existing == nil || existing.IsActive())),
		job.WithDepartment(strings.TrimSpace(d.Department)),
		job.WithLocation(strings.TrimSpace(d.Location)),
		job.WithEmploymentType(employment),
		job.WithSummary(d.Summary),
		job.WithDescription(d.Description),
		job.WithRequirements(d.Requirements),
	}
	if existing != nil {
		opts = append(opts, job.WithCreatedAt(existing.CreatedAt()))
	}
	return job.New(strings.TrimSpace(d.Title), opts...), nil
}

type JobResponse struct {
	PublicJob
	Meta
}

type PublicJob struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Department     string   `json:"department"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employmentType"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
}

func ToPublicJob(j job.Job) PublicJob {
	return PublicJob{
		ID:             j.ID().String(),
		Title:          j.Title(),
		Department:     j.Department(),
		Location:       j.Location(),
		EmploymentType: string(j.EmploymentType()),
		Summary:        j.Summary(),
		Description:    j.Description(),
		Requirements:   nonNil(j.Requirements()),
	}
}

func ToJobResponse(j job.Job) JobResponse {
	return JobResponse{
		PublicJob: ToPublicJob(j),
		Meta:      meta(j.Order(), j.IsActive(), j.CreatedAt(), j.UpdatedAt()),
	}
}
