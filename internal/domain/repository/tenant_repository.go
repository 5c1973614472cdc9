package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
}
