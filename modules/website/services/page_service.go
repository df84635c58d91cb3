package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/eventbus"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

var pageSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type PageUpdatedEvent struct {
	Slug  string
	Actor auth.Context
}

// PageDocument is the editable representation of a page.
type PageDocument struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

type PageService struct {
	repo      page.Repository
	publisher eventbus.EventBus
	now       func() time.Time
}

func NewPageService(repo page.Repository, publisher eventbus.EventBus) *PageService {
	return &PageService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *PageService) repoErr(op, slug string, err error) error {
	if errors.Is(err, page.ErrPageNotFound) {
		return fmt.Errorf("%w: page %q", ordering.ErrNotFound, slug)
	}
	return &ordering.StoreFailureError{Op: op, Err: err}
}

// Get returns a page for the public site.
func (s *PageService) Get(ctx context.Context, slug string) (page.Page, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.repoErr("get page", slug, err)
	}
	return p, nil
}

func (s *PageService) List(ctx context.Context, a auth.Context) ([]page.Page, error) {
	if !a.Authenticated() {
		return nil, ordering.ErrUnauthorized
	}
	pages, err := s.repo.List(ctx)
	if err != nil {
		return nil, &ordering.StoreFailureError{Op: "list pages", Err: err}
	}
	return pages, nil
}

func validateDocument(slug string, doc PageDocument) error {
	if !pageSlugPattern.MatchString(slug) {
		return &ordering.InvalidInputError{Field: "slug", Reason: "must be lowercase letters, digits and dashes"}
	}
	content := bytes.TrimSpace(doc.Content)
	if len(content) == 0 || content[0] != '{' || !json.Valid(content) {
		return &ordering.InvalidInputError{Field: "content", Reason: "must be a JSON object"}
	}
	return nil
}

// Put replaces the page, creating it when the slug is new.
func (s *PageService) Put(ctx context.Context, a auth.Context, slug string, doc PageDocument) (page.Page, error) {
	if !a.Authenticated() {
		return nil, ordering.ErrUnauthorized
	}
	if err := validateDocument(slug, doc); err != nil {
		return nil, err
	}

	current, err := s.repo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, page.ErrPageNotFound):
		current = page.New(slug)
	case err != nil:
		return nil, s.repoErr("get page", slug, err)
	}

	saved, err := s.repo.Save(ctx, current.Edit(doc.Title, doc.Content, a.UserID, s.now()))
	if err != nil {
		return nil, s.repoErr("save page", slug, err)
	}
	s.publisher.Publish(&PageUpdatedEvent{Slug: slug, Actor: a})
	return saved, nil
}

// Patch applies an RFC 7386 merge patch to {"title", "content"} of an existing page.
func (s *PageService) Patch(ctx context.Context, a auth.Context, slug string, patch []byte) (page.Page, error) {
	if !a.Authenticated() {
		return nil, ordering.ErrUnauthorized
	}
	current, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.repoErr("get page", slug, err)
	}

	original, err := json.Marshal(PageDocument{Title: current.Title(), Content: current.Content()})
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return nil, &ordering.InvalidInputError{Field: "body", Reason: "not a valid merge patch"}
	}
	var doc PageDocument
	if err := json.Unmarshal(merged, &doc); err != nil {
		return nil, &ordering.InvalidInputError{Field: "body", Reason: "patch produced an invalid page"}
	}
	return s.Put(ctx, a, slug, doc)
}

func (s *PageService) Delete(ctx context.Context, a auth.Context, slug string) error {
	if !a.Authenticated() {
		return ordering.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, slug); err != nil {
		return s.repoErr("delete page", slug, err)
	}
	return nil
}

// EnsureDefaults creates the pages the public site links to when they are
// missing and reports how many were created. It runs from the seeder.
func (s *PageService) EnsureDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, slug := range page.DefaultSlugs {
		_, err := s.repo.GetBySlug(ctx, slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, page.ErrPageNotFound) {
			return created, s.repoErr("get page", slug, err)
		}
		if _, err := s.repo.Save(ctx, page.New(slug, page.WithCreatedAt(s.now()), page.WithUpdatedAt(s.now()))); err != nil {
			return created, s.repoErr("save page", slug, err)
		}
		created++
	}
	return created, nil
}
