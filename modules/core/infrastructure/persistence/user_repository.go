package persistence

import (
	"context"
	"errors"

	faster "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/sitecms/modules/core/domain/aggregates/user"
	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/sitecms/pkg/composables"
)

const (
	userFindQuery = `
        SELECT
            u.id,
            u.email,
            u.password,
            u.last_login,
            u.created_at,
            u.updated_at
        FROM users u`

	userCountQuery = `SELECT COUNT(u.id) FROM users u`

	userInsertQuery = `
        INSERT INTO users (id, email, password, last_login, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	userUpdateQuery = `
        UPDATE users
        SET email = $2, password = $3, last_login = $4, updated_at = $5
        WHERE id = $1`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) queryOne(ctx context.Context, query string, args ...any) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, faster.Wrap(err, "failed to query user")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, faster.Wrap(err, "failed to scan user")
	}
	return ToDomainUser(m), nil
}

func (g *PgUserRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, userCountQuery).Scan(&count); err != nil {
		return 0, faster.Wrap(err, "failed to count users")
	}
	return count, nil
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return g.queryOne(ctx, userFindQuery+" WHERE u.id = $1", id)
}

func (g *PgUserRepository) GetByEmail(ctx context.Context, email user.Email) (user.User, error) {
	return g.queryOne(ctx, userFindQuery+" WHERE u.email = $1", email.String())
}

func (g *PgUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	m := ToDBUser(u)
	if _, err := tx.Exec(ctx, userInsertQuery, m.ID, m.Email, m.Password, m.LastLogin, m.CreatedAt, m.UpdatedAt); err != nil {
		return nil, faster.Wrap(err, "failed to insert user")
	}
	return g.GetByID(ctx, m.ID)
}

func (g *PgUserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	m := ToDBUser(u)
	tag, err := tx.Exec(ctx, userUpdateQuery, m.ID, m.Email, m.Password, m.LastLogin, m.UpdatedAt)
	if err != nil {
		return nil, faster.Wrap(err, "failed to update user")
	}
	if tag.RowsAffected() == 0 {
		return nil, user.ErrUserNotFound
	}
	return g.GetByID(ctx, m.ID)
}
