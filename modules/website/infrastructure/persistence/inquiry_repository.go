package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	faster "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence/models"
	"github.com/iota-uz/sitecms/pkg/composables"
)

const (
	inquiryFindQuery = `
        SELECT
            i.id,
            i.kind,
            i.name,
            i.email,
            i.phone,
            i.company,
            i.message,
            i.job_id,
            i.resume_key,
            i.ip,
            i.user_agent,
            i.created_at
        FROM website_inquiries i`

	inquiryCountQuery = `SELECT COUNT(i.id) FROM website_inquiries i`

	inquiryInsertQuery = `
        INSERT INTO website_inquiries (
            id, kind, name, email, phone, company, message, job_id, resume_key, ip, user_agent, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	inquiryDeleteQuery = `DELETE FROM website_inquiries WHERE id = $1`
)

type PgInquiryRepository struct{}

func NewInquiryRepository() inquiry.Repository {
	return &PgInquiryRepository{}
}

func buildInquiryFilters(params *inquiry.FindParams) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}
	if params == nil {
		return where, args
	}
	if params.Kind != "" {
		args = append(args, string(params.Kind))
		where = append(where, fmt.Sprintf("i.kind = $%d", len(args)))
	}
	if params.JobID != uuid.Nil {
		args = append(args, params.JobID)
		where = append(where, fmt.Sprintf("i.job_id = $%d", len(args)))
	}
	return where, args
}

func (r *PgInquiryRepository) Count(ctx context.Context, params *inquiry.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildInquiryFilters(params)
	var count int64
	if err := tx.QueryRow(ctx, inquiryCountQuery+" WHERE "+strings.Join(where, " AND "), args...).Scan(&count); err != nil {
		return 0, faster.Wrap(err, "failed to count inquiries")
	}
	return count, nil
}

func (r *PgInquiryRepository) GetPaginated(ctx context.Context, params *inquiry.FindParams) ([]inquiry.Inquiry, error) {
	where, args := buildInquiryFilters(params)
	query := inquiryFindQuery + " WHERE " + strings.Join(where, " AND ") + " ORDER BY i.created_at DESC, i.id"
	if params != nil && params.Limit > 0 {
		args = append(args, params.Limit, params.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return r.queryInquiries(ctx, query, args...)
}

func (r *PgInquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	inquiries, err := r.queryInquiries(ctx, inquiryFindQuery+" WHERE i.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(inquiries) == 0 {
		return nil, inquiry.ErrInquiryNotFound
	}
	return inquiries[0], nil
}

func (r *PgInquiryRepository) Create(ctx context.Context, i inquiry.Inquiry) (inquiry.Inquiry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	m := ToDBInquiry(i)
	if _, err := tx.Exec(
		ctx,
		inquiryInsertQuery,
		m.ID, m.Kind, m.Name, m.Email, m.Phone, m.Company, m.Message, m.JobID, m.ResumeKey, m.IP, m.UserAgent, m.CreatedAt,
	); err != nil {
		return nil, faster.Wrap(err, "failed to insert inquiry")
	}
	return r.GetByID(ctx, m.ID)
}

func (r *PgInquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, inquiryDeleteQuery, id)
	if err != nil {
		return faster.Wrap(err, "failed to delete inquiry")
	}
	if tag.RowsAffected() == 0 {
		return inquiry.ErrInquiryNotFound
	}
	return nil
}

func (r *PgInquiryRepository) queryInquiries(ctx context.Context, query string, args ...any) ([]inquiry.Inquiry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, faster.Wrap(err, "failed to query inquiries")
	}
	dbInquiries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Inquiry])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, faster.Wrap(err, "failed to scan inquiries")
	}
	inquiries := make([]inquiry.Inquiry, 0, len(dbInquiries))
	for _, m := range dbInquiries {
		inquiries = append(inquiries, ToDomainInquiry(m))
	}
	return inquiries, nil
}
