package persistence

import (
	"context"
	"errors"

	faster "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/sitecms/pkg/composables"
)

const (
	sessionFindQuery = `
        SELECT token, user_id, ip, user_agent, expires_at, created_at
        FROM sessions
        WHERE token = $1 AND expires_at > now()`

	sessionInsertQuery = `
        INSERT INTO sessions (token, user_id, ip, user_agent, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	sessionDeleteQuery = `DELETE FROM sessions WHERE token = $1`

	sessionPurgeQuery = `DELETE FROM sessions WHERE expires_at <= now()`
)

type PgSessionRepository struct{}

func NewSessionRepository() *PgSessionRepository {
	return &PgSessionRepository{}
}

func (r *PgSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, sessionFindQuery, token)
	if err != nil {
		return nil, faster.Wrap(err, "failed to query session")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Session])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, faster.Wrap(err, "failed to scan session")
	}
	return ToDomainSession(m), nil
}

func (r *PgSessionRepository) Create(ctx context.Context, s *session.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	m := ToDBSession(s)
	if _, err := tx.Exec(ctx, sessionInsertQuery, m.Token, m.UserID, m.IP, m.UserAgent, m.ExpiresAt, m.CreatedAt); err != nil {
		return faster.Wrap(err, "failed to insert session")
	}
	return nil
}

func (r *PgSessionRepository) Delete(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sessionDeleteQuery, token)
	return err
}

// Purge removes expired sessions and reports how many were dropped.
func (r *PgSessionRepository) Purge(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, sessionPurgeQuery)
	if err != nil {
		return 0, faster.Wrap(err, "failed to purge sessions")
	}
	return tag.RowsAffected(), nil
}
