package usecase

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// Comprobaciones de referencias: un id de otro tenant se trata igual que uno inexistente.

func requireCustomer(ctx context.Context, tx repository.TxRepos, tenantID, id string) (*entity.Customer, error) {
	c, err := tx.Customers.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente", id)
	}
	return c, nil
}

// requireAddress exige además que la dirección sea del cliente indicado.
func requireAddress(ctx context.Context, tx repository.TxRepos, tenantID, id, customerID string) error {
	a, err := tx.Addresses.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if a == nil || a.CustomerID != customerID {
		return domain.NotFound("dirección", id)
	}
	return nil
}

func requireUser(ctx context.Context, tx repository.TxRepos, tenantID, id string) error {
	u, err := tx.Users.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFound("usuario", id)
	}
	return nil
}

func requireJob(ctx context.Context, tx repository.TxRepos, tenantID, id string) (*entity.Job, error) {
	j, err := tx.Jobs.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.NotFound("trabajo", id)
	}
	return j, nil
}

// checkRefs comprueba customerID (si no está vacío), la dirección contra el cliente dueño
// ownerID y el usuario asignado. Las referencias nil no se comprueban.
func checkRefs(
	ctx context.Context,
	tx repository.TxRepos,
	tenantID, customerID, ownerID string,
	addressID, assignedTo *string,
) error {
	if customerID != "" {
		if _, err := requireCustomer(ctx, tx, tenantID, customerID); err != nil {
			return err
		}
	}
	if addressID != nil {
		if err := requireAddress(ctx, tx, tenantID, *addressID, ownerID); err != nil {
			return err
		}
	}
	if assignedTo != nil {
		if err := requireUser(ctx, tx, tenantID, *assignedTo); err != nil {
			return err
		}
	}
	return nil
}

// optionalID convierte "" en nil para referencias opcionales.
func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
