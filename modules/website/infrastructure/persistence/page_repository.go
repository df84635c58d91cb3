package persistence

import (
	"context"
	"errors"

	faster "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence/models"
	"github.com/iota-uz/sitecms/pkg/composables"
)

const (
	pageFindQuery = `
        SELECT slug, title, content, updated_by, created_at, updated_at
        FROM website_pages`

	pageUpsertQuery = `
        INSERT INTO website_pages (slug, title, content, updated_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (slug) DO UPDATE
        SET title = EXCLUDED.title,
            content = EXCLUDED.content,
            updated_by = EXCLUDED.updated_by,
            updated_at = EXCLUDED.updated_at
        RETURNING slug, title, content, updated_by, created_at, updated_at`

	pageDeleteQuery = `DELETE FROM website_pages WHERE slug = $1`
)

type PgPageRepository struct{}

func NewPageRepository() page.Repository {
	return &PgPageRepository{}
}

func (r *PgPageRepository) GetBySlug(ctx context.Context, slug string) (page.Page, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, pageFindQuery+" WHERE slug = $1", slug)
	if err != nil {
		return nil, faster.Wrap(err, "failed to query page")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Page])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, page.ErrPageNotFound
	}
	if err != nil {
		return nil, faster.Wrap(err, "failed to scan page")
	}
	return ToDomainPage(m), nil
}

func (r *PgPageRepository) List(ctx context.Context) ([]page.Page, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, pageFindQuery+" ORDER BY slug")
	if err != nil {
		return nil, faster.Wrap(err, "failed to query pages")
	}
	dbPages, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Page])
	if err != nil {
		return nil, faster.Wrap(err, "failed to scan pages")
	}
	pages := make([]page.Page, 0, len(dbPages))
	for _, m := range dbPages {
		pages = append(pages, ToDomainPage(m))
	}
	return pages, nil
}

func (r *PgPageRepository) Save(ctx context.Context, p page.Page) (page.Page, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	m := ToDBPage(p)
	rows, err := tx.Query(ctx, pageUpsertQuery, m.Slug, m.Title, m.Content, m.UpdatedBy, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, faster.Wrap(err, "failed to save page")
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Page])
	if err != nil {
		return nil, faster.Wrap(err, "failed to scan saved page")
	}
	return ToDomainPage(saved), nil
}

func (r *PgPageRepository) Delete(ctx context.Context, slug string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, pageDeleteQuery, slug)
	if err != nil {
		return faster.Wrap(err, "failed to delete page")
	}
	if tag.RowsAffected() == 0 {
		return page.ErrPageNotFound
	}
	return nil
}
