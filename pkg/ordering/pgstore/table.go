package pgstore

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/sitecms/pkg/ordering"
)

// Table describes how records of one collection map onto a Postgres table.
//
// Every table carries id, "order", is_active, created_at and updated_at.
// Child collections additionally carry ScopeColumn, a foreign key to the parent.
// Columns lists the remaining payload columns in the order Values returns them.
type Table[T ordering.Record[T]] struct {
	Name        string
	ScopeColumn string
	Columns     []string
	Values      func(record T) []any
	Scan        pgx.RowToFunc[T]
}

var conventionColumns = []string{"id", `"order"`, "is_active", "created_at", "updated_at"}

func (t Table[T]) validate() error {
	if t.Name == "" {
		return fmt.Errorf("pgstore: table name is required")
	}
	if t.Values == nil || t.Scan == nil {
		return fmt.Errorf("pgstore: table %s: Values and Scan are required", t.Name)
	}
	return nil
}

func (t Table[T]) selectList() string {
	cols := append([]string{}, conventionColumns...)
	if t.ScopeColumn != "" {
		cols = append(cols, t.ScopeColumn)
	}
	cols = append(cols, t.Columns...)
	return strings.Join(cols, ", ")
}

// scopeFilter returns the predicate restricting a query to scope, using
// placeholder $argN for the parent id. Root tables need no argument.
func (t Table[T]) scopeFilter(scope ordering.Scope, argN int) (string, []any, error) {
	switch {
	case t.ScopeColumn == "" && !scope.IsRoot():
		return "", nil, fmt.Errorf("%w: %s is not a child collection", ordering.ErrInvalidInput, t.Name)
	case t.ScopeColumn != "" && scope.IsRoot():
		return "", nil, fmt.Errorf("%w: %s requires a parent", ordering.ErrInvalidInput, t.Name)
	case t.ScopeColumn == "":
		return "TRUE", nil, nil
	default:
		return fmt.Sprintf("%s = $%d", t.ScopeColumn, argN), []any{scope.Parent}, nil
	}
}

func (t Table[T]) listQuery(activeOnly bool) string {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %%s", t.selectList(), t.Name)
	if activeOnly {
		q += " AND is_active"
	}
	return q + ` ORDER BY "order", id`
}

func (t Table[T]) maxOrderQuery() string {
	return fmt.Sprintf(`SELECT COALESCE(MAX("order"), -1) FROM %s WHERE %%s`, t.Name)
}

func (t Table[T]) getQuery() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND %%s", t.selectList(), t.Name)
}

func (t Table[T]) insertQuery() string {
	cols := []string{"id", `"order"`, "is_active"}
	if t.ScopeColumn != "" {
		cols = append(cols, t.ScopeColumn)
	}
	cols = append(cols, t.Columns...)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.Name, strings.Join(cols, ", "), strings.Join(placeholders, ", "), t.selectList(),
	)
}

// updateQuery leaves the scope column out of SET: records never change parent.
func (t Table[T]) updateQuery() string {
	sets := []string{`"order" = $2`, "is_active = $3"}
	for i, c := range t.Columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+4))
	}
	sets = append(sets, "updated_at = now()")
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 AND %%s RETURNING %s",
		t.Name, strings.Join(sets, ", "), t.selectList(),
	)
}

func (t Table[T]) deleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND %%s", t.Name)
}

func (t Table[T]) bulkOrderQuery() string {
	return fmt.Sprintf(
		`UPDATE %s AS t SET "order" = v.ord, updated_at = now()
FROM unnest($1::uuid[], $2::int[]) AS v(id, ord)
WHERE t.id = v.id AND %%s`,
		t.Name,
	)
}

func (t Table[T]) lockKey(scope ordering.Scope) string {
	return t.Name + ":" + scope.String()
}
