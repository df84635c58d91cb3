package persistence

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
)

type InmemPageRepository struct {
	storage *persistence.SafeMap[string, page.Page]
}

func NewInmemPageRepository() *InmemPageRepository {
	return &InmemPageRepository{storage: persistence.NewSafeMap[string, page.Page]()}
}

func (r *InmemPageRepository) GetBySlug(_ context.Context, slug string) (page.Page, error) {
	p, ok := r.storage.Get(slug)
	if !ok {
		return nil, page.ErrPageNotFound
	}
	return p, nil
}

func (r *InmemPageRepository) List(_ context.Context) ([]page.Page, error) {
	pages := r.storage.Values()
	slices.SortFunc(pages, func(a, b page.Page) int { return cmp.Compare(a.Slug(), b.Slug()) })
	return pages, nil
}

func (r *InmemPageRepository) Save(_ context.Context, p page.Page) (page.Page, error) {
	if existing, ok := r.storage.Get(p.Slug()); ok && !existing.CreatedAt().IsZero() {
		p = page.New(p.Slug(),
			page.WithTitle(p.Title()),
			page.WithContent(p.Content()),
			page.WithUpdatedBy(p.UpdatedBy()),
			page.WithCreatedAt(existing.CreatedAt()),
			page.WithUpdatedAt(p.UpdatedAt()),
		)
	}
	r.storage.Set(p.Slug(), p)
	return p, nil
}

func (r *InmemPageRepository) Delete(_ context.Context, slug string) error {
	if _, ok := r.storage.Get(slug); !ok {
		return page.ErrPageNotFound
	}
	r.storage.Delete(slug)
	return nil
}

type InmemInquiryRepository struct {
	storage *persistence.SafeMap[uuid.UUID, inquiry.Inquiry]
}

func NewInmemInquiryRepository() *InmemInquiryRepository {
	return &InmemInquiryRepository{storage: persistence.NewSafeMap[uuid.UUID, inquiry.Inquiry]()}
}

func (r *InmemInquiryRepository) filter(params *inquiry.FindParams) []inquiry.Inquiry {
	all := r.storage.Values()
	if params != nil {
		all = slices.DeleteFunc(all, func(i inquiry.Inquiry) bool {
			if params.Kind != "" && i.Kind() != params.Kind {
				return true
			}
			return params.JobID != uuid.Nil && i.JobID() != params.JobID
		})
	}
	slices.SortFunc(all, func(a, b inquiry.Inquiry) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})
	return all
}

func (r *InmemInquiryRepository) Count(_ context.Context, params *inquiry.FindParams) (int64, error) {
	return int64(len(r.filter(params))), nil
}

func (r *InmemInquiryRepository) GetPaginated(_ context.Context, params *inquiry.FindParams) ([]inquiry.Inquiry, error) {
	all := r.filter(params)
	if params == nil || params.Limit <= 0 {
		return all, nil
	}
	start := min(params.Offset, len(all))
	end := min(start+params.Limit, len(all))
	return all[start:end], nil
}

func (r *InmemInquiryRepository) GetByID(_ context.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	i, ok := r.storage.Get(id)
	if !ok {
		return nil, inquiry.ErrInquiryNotFound
	}
	return i, nil
}

func (r *InmemInquiryRepository) Create(_ context.Context, i inquiry.Inquiry) (inquiry.Inquiry, error) {
	r.storage.Set(i.ID(), i)
	return i, nil
}

func (r *InmemInquiryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.storage.Get(id); !ok {
		return inquiry.ErrInquiryNotFound
	}
	r.storage.Delete(id)
	return nil
}
