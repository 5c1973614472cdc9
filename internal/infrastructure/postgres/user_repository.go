package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.TenantID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrapErr("insert user", err)
	}
	return nil
}

const userSelect = `
	SELECT id, tenant_id, email, password_hash, name, role, status, created_at, updated_at
	FROM users`

// GetByID obtiene un usuario del tenant; nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.User, error) {
	return r.get(ctx, userSelect+` WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetByEmail obtiene un usuario del tenant por email.
func (r *UserRepo) GetByEmail(ctx context.Context, tenantID, email string) (*entity.User, error) {
	return r.get(ctx, userSelect+` WHERE tenant_id = $1 AND email = $2`, tenantID, email)
}

func (r *UserRepo) get(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get user", err)
	}
	return &u, nil
}

// List lista usuarios del tenant con paginación.
func (r *UserRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.User, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, wrapErr("count users", err)
	}
	rows, err := r.q.Query(ctx, userSelect+` WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, wrapErr("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, wrapErr("scan user", err)
		}
		list = append(list, &u)
	}
	return list, total, wrapErr("list users", rows.Err())
}
