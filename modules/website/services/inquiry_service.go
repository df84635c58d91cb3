package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/job"
	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/eventbus"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

type InquiryDTO struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"omitempty,max=5000"`
}

// Attachment is a file sent along with an application.
type Attachment struct {
	Name string
	Body io.Reader
}

type InquiryService struct {
	repo      inquiry.Repository
	jobs      *ordering.Manager[job.Job]
	uploads   *services.UploadService
	publisher eventbus.EventBus
}

func NewInquiryService(
	repo inquiry.Repository,
	jobs *ordering.Manager[job.Job],
	uploads *services.UploadService,
	publisher eventbus.EventBus,
) *InquiryService {
	return &InquiryService{
		repo:      repo,
		jobs:      jobs,
		uploads:   uploads,
		publisher: publisher,
	}
}

func clientOptions(ctx context.Context) inquiry.Option {
	ip, _ := composables.UseIP(ctx)
	ua, _ := composables.UseUserAgent(ctx)
	return inquiry.WithClient(ip, ua)
}

func (s *InquiryService) options(ctx context.Context, dto InquiryDTO) []inquiry.Option {
	return []inquiry.Option{
		inquiry.WithPhone(strings.TrimSpace(dto.Phone)),
		inquiry.WithCompany(strings.TrimSpace(dto.Company)),
		inquiry.WithMessage(strings.TrimSpace(dto.Message)),
		clientOptions(ctx),
	}
}

func (s *InquiryService) create(ctx context.Context, i inquiry.Inquiry, jobTitle string) (inquiry.Inquiry, error) {
	created, err := s.repo.Create(ctx, i)
	if err != nil {
		return nil, &ordering.StoreFailureError{Op: "create inquiry", Err: err}
	}
	s.publisher.Publish(&inquiry.SubmittedEvent{Inquiry: created, JobTitle: jobTitle})
	return created, nil
}

// SubmitContact stores a contact form message.
func (s *InquiryService) SubmitContact(ctx context.Context, dto InquiryDTO) (inquiry.Inquiry, error) {
	i := inquiry.New(strings.TrimSpace(dto.Name), strings.ToLower(strings.TrimSpace(dto.Email)), s.options(ctx, dto)...)
	return s.create(ctx, i, "")
}

// Apply stores an application for an open position. The job must exist and
// be active. The resume, when present, goes to the private documents area.
func (s *InquiryService) Apply(ctx context.Context, jobID uuid.UUID, dto InquiryDTO, resume *Attachment) (inquiry.Inquiry, error) {
	position, err := s.jobs.GetPublic(ctx, ordering.RootScope(job.Collection), jobID)
	if err != nil {
		return nil, err
	}

	opts := append(s.options(ctx, dto), inquiry.WithJob(position.ID()))
	if resume != nil {
		up, err := s.uploads.Store(ctx, services.KindDocument, resume.Name, resume.Body)
		if err != nil {
			var invalid *ordering.InvalidInputError
			if errors.As(err, &invalid) {
				invalid.Field = "resume"
			}
			return nil, err
		}
		opts = append(opts, inquiry.WithResumeKey(up.Key))
	}

	i := inquiry.New(strings.TrimSpace(dto.Name), strings.ToLower(strings.TrimSpace(dto.Email)), opts...)
	return s.create(ctx, i, position.Title())
}

func (s *InquiryService) GetPaginated(ctx context.Context, a auth.Context, params *inquiry.FindParams) ([]inquiry.Inquiry, int64, error) {
	if !a.Authenticated() {
		return nil, 0, ordering.ErrUnauthorized
	}
	if params == nil {
		params = &inquiry.FindParams{}
	}
	if params.Kind != "" && !params.Kind.IsValid() {
		return nil, 0, &ordering.InvalidInputError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", params.Kind)}
	}
	items, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, &ordering.StoreFailureError{Op: "list inquiries", Err: err}
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, &ordering.StoreFailureError{Op: "count inquiries", Err: err}
	}
	return items, total, nil
}

func (s *InquiryService) GetByID(ctx context.Context, a auth.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	if !a.Authenticated() {
		return nil, ordering.ErrUnauthorized
	}
	i, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, inquiry.ErrInquiryNotFound) {
		return nil, fmt.Errorf("%w: inquiry %s", ordering.ErrNotFound, id)
	}
	if err != nil {
		return nil, &ordering.StoreFailureError{Op: "get inquiry", Err: err}
	}
	return i, nil
}

// Delete removes an inquiry together with its resume.
func (s *InquiryService) Delete(ctx context.Context, a auth.Context, id uuid.UUID) error {
	i, err := s.GetByID(ctx, a, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return &ordering.StoreFailureError{Op: "delete inquiry", Err: err}
	}
	if i.ResumeKey() != "" {
		if err := s.uploads.Delete(ctx, a, i.ResumeKey()); err != nil && !errors.Is(err, ordering.ErrNotFound) {
			composables.UseLogger(ctx).WithError(err).WithField("key", i.ResumeKey()).Warn("inquiry: resume left behind")
		}
	}
	return nil
}
