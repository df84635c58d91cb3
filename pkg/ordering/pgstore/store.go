// Package pgstore implements ordering.Store on Postgres through pgx.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store[T ordering.Record[T]] struct {
	table Table[T]
}

func New[T ordering.Record[T]](table Table[T]) (*Store[T], error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	return &Store[T]{table: table}, nil
}

// MustNew is New for package-level table definitions known to be valid.
func MustNew[T ordering.Record[T]](table Table[T]) *Store[T] {
	s, err := New(table)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store[T]) filter(query string, scope ordering.Scope, argN int, args []any) (string, []any, error) {
	predicate, scopeArgs, err := s.table.scopeFilter(scope, argN)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf(query, predicate), append(args, scopeArgs...), nil
}

func (s *Store[T]) ListByScope(ctx context.Context, scope ordering.Scope, activeOnly bool) ([]T, error) {
	query, args, err := s.filter(s.table.listQuery(activeOnly), scope, 1, nil)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, s.table.Scan)
}

func (s *Store[T]) MaxOrder(ctx context.Context, scope ordering.Scope) (int, error) {
	query, args, err := s.filter(s.table.maxOrderQuery(), scope, 1, nil)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var maxOrder int
	if err := tx.QueryRow(ctx, query, args...).Scan(&maxOrder); err != nil {
		return 0, err
	}
	return maxOrder, nil
}

// BulkSetOrder writes every position in one statement inside a transaction
// holding an advisory lock on the scope, so concurrent writers on other
// processes are serialized too. A short row count rolls the write back.
func (s *Store[T]) BulkSetOrder(ctx context.Context, scope ordering.Scope, positions []ordering.Position) error {
	ids := make([]uuid.UUID, len(positions))
	orders := make([]int32, len(positions))
	for i, p := range positions {
		ids[i] = p.ID
		orders[i] = int32(p.Order)
	}
	query, args, err := s.filter(s.table.bulkOrderQuery(), scope, 3, []any{ids, orders})
	if err != nil {
		return err
	}

	return composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(txCtx, "SELECT pg_advisory_xact_lock(hashtext($1))", s.table.lockKey(scope)); err != nil {
			return err
		}
		tag, err := tx.Exec(txCtx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != int64(len(positions)) {
			return fmt.Errorf("%w: %d of %d ids matched %s", ordering.ErrNotFound, tag.RowsAffected(), len(positions), scope)
		}
		return nil
	})
}

func (s *Store[T]) GetByID(ctx context.Context, scope ordering.Scope, id uuid.UUID) (T, error) {
	var zero T
	query, args, err := s.filter(s.table.getQuery(), scope, 2, []any{id})
	if err != nil {
		return zero, err
	}
	return s.one(ctx, query, args...)
}

func (s *Store[T]) Create(ctx context.Context, scope ordering.Scope, record T) (T, error) {
	var zero T
	if _, _, err := s.table.scopeFilter(scope, 1); err != nil {
		return zero, err
	}
	args := []any{record.RecordID(), record.RecordOrder(), record.RecordActive()}
	if s.table.ScopeColumn != "" {
		args = append(args, scope.Parent)
	}
	args = append(args, s.table.Values(record)...)
	return s.one(ctx, s.table.insertQuery(), args...)
}

func (s *Store[T]) Update(ctx context.Context, scope ordering.Scope, record T) (T, error) {
	var zero T
	args := []any{record.RecordID(), record.RecordOrder(), record.RecordActive()}
	args = append(args, s.table.Values(record)...)
	query, args, err := s.filter(s.table.updateQuery(), scope, len(args)+1, args)
	if err != nil {
		return zero, err
	}
	return s.one(ctx, query, args...)
}

// Delete removes one record. Child rows go with it through ON DELETE CASCADE.
func (s *Store[T]) Delete(ctx context.Context, scope ordering.Scope, id uuid.UUID) error {
	query, args, err := s.filter(s.table.deleteQuery(), scope, 2, []any{id})
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ordering.ErrNotFound
	}
	return nil
}

func (s *Store[T]) one(ctx context.Context, query string, args ...any) (T, error) {
	var zero T
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return zero, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	record, err := pgx.CollectExactlyOneRow(rows, s.table.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ordering.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return zero, fmt.Errorf("%w: %s", ordering.ErrConflict, pgErr.ConstraintName)
		case foreignKeyViolation:
			return zero, fmt.Errorf("%w: %s", ordering.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return record, err
}
