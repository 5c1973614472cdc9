package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (siempre dentro de un tenant).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*entity.User, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.User, int, error)
}
