package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Todas las operaciones filtran por tenantID: un cliente de otro tenant no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	List(ctx context.Context, tenantID string, filter CustomerFilter, limit, offset int) ([]*entity.Customer, int, error)
	Update(ctx context.Context, tenantID, id string, p entity.CustomerPatch) error
	Delete(ctx context.Context, tenantID, id string) error
}

// CustomerFilter filtros opcionales del listado.
type CustomerFilter struct {
	Status string
	Search string // nombre, email o teléfono (contiene)
}

// AddressRepository define el puerto de persistencia para Address.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Address, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*entity.Address, error)
	HasPrimary(ctx context.Context, tenantID, customerID string) (bool, error)
	DeleteByCustomer(ctx context.Context, tenantID, customerID string) error
}
