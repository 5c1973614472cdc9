package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// Querier abstrae pool y tx para que los repos funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql construye SQL con placeholders $1, $2...
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila sigue referenciada (ON DELETE RESTRICT).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// wrapErr traduce errores del driver a errores de dominio.
func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: registro referenciado", domain.ErrConflict, op)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", domain.ErrTimeout, op)
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
	}
}

// setValue agrega col = valor si el campo vino en el patch; null escribe el valor cero.
func setValue[T any](b sq.UpdateBuilder, col string, v patch.Value[T]) sq.UpdateBuilder {
	if !v.IsPresent() {
		return b
	}
	var zero T
	return b.Set(col, v.OrElse(zero))
}

// setNullable agrega col = valor si el campo vino en el patch; null escribe NULL.
func setNullable[T any](b sq.UpdateBuilder, col string, v patch.Value[T]) sq.UpdateBuilder {
	if !v.IsPresent() {
		return b
	}
	if val, ok := v.Get(); ok {
		return b.Set(col, val)
	}
	return b.Set(col, nil)
}

// execUpdate ejecuta un UPDATE y devuelve NotFound si no afectó filas.
func execUpdate(ctx context.Context, q Querier, b sq.UpdateBuilder, resource, id string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", resource, err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return wrapErr("update "+resource, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(resource, id)
	}
	return nil
}

// countAndList ejecuta el COUNT del filtro y luego la página; scan recibe cada fila.
func countAndList(ctx context.Context, q Querier, base sq.SelectBuilder, cols []string, orderBy string, limit, offset int, scan func(pgx.Rows) error) (int, error) {
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, wrapErr("count", err)
	}
	pageSQL, pageArgs, err := base.Columns(cols...).
		OrderBy(orderBy).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build list: %w", err)
	}
	rows, err := q.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return 0, wrapErr("list", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return 0, wrapErr("scan", err)
		}
	}
	return total, wrapErr("list", rows.Err())
}
