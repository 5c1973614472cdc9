package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes y sus direcciones.
type CustomerUseCase struct {
	runner repository.TxRunner
	repos  repository.TxRepos
}

// NewCustomerUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewCustomerUseCase(runner repository.TxRunner, repos repository.TxRepos) *CustomerUseCase {
	return &CustomerUseCase{runner: runner, repos: repos}
}

// Create valida el cuerpo, reserva CUST-xxxxxx y crea cliente y dirección en una sola transacción.
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, raw map[string]any) (*dto.CustomerResponse, error) {
	p, err := customerSchema.Validate(raw, validation.ModeCreate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Customer{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		FirstName:   p.String("firstName").OrElse(""),
		LastName:    p.String("lastName").OrElse(""),
		Email:       p.String("email").OrElse(""),
		Phone:       p.String("phone").OrElse(""),
		CompanyName: p.String("companyName").OrElse(""),
		Notes:       p.String("notes").OrElse(""),
		Status:      p.String("status").OrElse(entity.CustomerActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var addr *entity.Address
	if ap := p.Object("address"); ap != nil {
		addr = newAddress(tenantID, c.ID, ap, now)
	}

	err = createNumbered(ctx, uc.runner, tenantID, domain.SequenceCustomer, func(tx repository.TxRepos, number string) error {
		c.CustomerNumber = number
		if err := tx.Customers.Create(ctx, c); err != nil {
			return err
		}
		if addr == nil {
			return nil
		}
		addr.IsPrimary = true
		return tx.Addresses.Create(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	if addr != nil {
		c.Addresses = []*entity.Address{addr}
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Get devuelve el cliente con sus direcciones.
func (uc *CustomerUseCase) Get(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	c, err := requireCustomer(ctx, uc.repos, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c.Addresses, err = uc.repos.Addresses.ListByCustomer(ctx, tenantID, id); err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// List lista clientes del tenant.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID string, filter repository.CustomerFilter, page dto.PageRequest) (*dto.ListResponse[dto.CustomerResponse], error) {
	page = normalizePage(page)
	list, total, err := uc.repos.Customers.List(ctx, tenantID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return listResponse(list, total, page, toCustomerResponse), nil
}

// Update aplica una actualización parcial. Una "address" en el cuerpo agrega una dirección nueva,
// principal solo si el cliente aún no tiene una.
func (uc *CustomerUseCase) Update(ctx context.Context, tenantID, id string, raw map[string]any) (*dto.CustomerResponse, error) {
	p, err := customerSchema.Validate(raw, validation.ModeUpdate)
	if err != nil {
		return nil, err
	}
	patch := entity.CustomerPatch{
		FirstName:   p.String("firstName"),
		LastName:    p.String("lastName"),
		Email:       p.String("email"),
		Phone:       p.String("phone"),
		CompanyName: p.String("companyName"),
		Notes:       p.String("notes"),
		Status:      p.String("status"),
	}
	err = uc.runner.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Customers.Update(ctx, tenantID, id, patch); err != nil {
			return err
		}
		ap := p.Object("address")
		if ap == nil {
			return nil
		}
		hasPrimary, err := tx.Addresses.HasPrimary(ctx, tenantID, id)
		if err != nil {
			return err
		}
		addr := newAddress(tenantID, id, ap, time.Now().UTC())
		addr.IsPrimary = !hasPrimary
		return tx.Addresses.Create(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, tenantID, id)
}

// Delete elimina el cliente y sus direcciones en la misma transacción. Las citas del cliente
// se eliminan con él; trabajos o facturas asociados lo impiden (ErrConflict).
func (uc *CustomerUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.runner.Run(ctx, func(tx repository.TxRepos) error {
		if _, err := requireCustomer(ctx, tx, tenantID, id); err != nil {
			return err
		}
		if err := tx.Addresses.DeleteByCustomer(ctx, tenantID, id); err != nil {
			return err
		}
		return tx.Customers.Delete(ctx, tenantID, id)
	})
}

func newAddress(tenantID, customerID string, p *validation.Payload, now time.Time) *entity.Address {
	return &entity.Address{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: customerID,
		Street:     p.String("street").OrElse(""),
		City:       p.String("city").OrElse(""),
		State:      p.String("state").OrElse(""),
		ZipCode:    p.String("zipCode").OrElse(""),
		Country:    p.String("country").OrElse("US"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
