package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un tenant; slug repetido → ErrDuplicate.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, status, locale, timezone, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Slug, t.Status, t.Locale, t.Timezone, t.Currency, t.CreatedAt, t.UpdatedAt,
	)
	return wrapErr("insert tenant", err)
}

const tenantSelect = `
	SELECT id, name, slug, status, locale, timezone, currency, created_at, updated_at
	FROM tenants`

// GetByID obtiene un tenant por ID; nil si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.get(ctx, tenantSelect+` WHERE id = $1`, id)
}

// GetBySlug obtiene un tenant por slug; nil si no existe.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return r.get(ctx, tenantSelect+` WHERE slug = $1`, slug)
}

func (r *TenantRepo) get(ctx context.Context, query, arg string) (*entity.Tenant, error) {
	var t entity.Tenant
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Status, &t.Locale, &t.Timezone, &t.Currency, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get tenant", err)
	}
	return &t, nil
}
