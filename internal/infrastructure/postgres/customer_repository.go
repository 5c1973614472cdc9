package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.AddressRepository  = (*AddressRepo)(nil)
)

var customerColumns = []string{
	"id", "tenant_id", "customer_number", "first_name", "last_name", "email", "phone",
	"company_name", "notes", "status", "created_at", "updated_at",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, tenant_id, customer_number, first_name, last_name, email, phone, company_name, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.CustomerNumber, c.FirstName, c.LastName, c.Email, c.Phone,
		c.CompanyName, c.Notes, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return wrapErr("insert customer", err)
}

// GetByID obtiene un cliente del tenant; nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get customer: %w", err)
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get customer", err)
	}
	return c, nil
}

// List lista clientes del tenant con filtros y paginación.
func (r *CustomerRepo) List(ctx context.Context, tenantID string, f repository.CustomerFilter, limit, offset int) ([]*entity.Customer, int, error) {
	var list []*entity.Customer
	total, err := countAndList(ctx, r.q, customerListBase(tenantID, f), customerColumns, "created_at DESC", limit, offset,
		func(rows pgx.Rows) error {
			c, err := scanCustomer(rows)
			if err != nil {
				return err
			}
			list = append(list, c)
			return nil
		})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func customerListBase(tenantID string, f repository.CustomerFilter) sq.SelectBuilder {
	b := psql.Select().From("customers").Where(sq.Eq{"tenant_id": tenantID})
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"first_name": like},
			sq.ILike{"last_name": like},
			sq.ILike{"email": like},
			sq.ILike{"phone": like},
		})
	}
	return b
}

// Update aplica solo los campos presentes del patch.
func (r *CustomerRepo) Update(ctx context.Context, tenantID, id string, p entity.CustomerPatch) error {
	return execUpdate(ctx, r.q, customerUpdate(tenantID, id, p, time.Now()), "cliente", id)
}

func customerUpdate(tenantID, id string, p entity.CustomerPatch, now time.Time) sq.UpdateBuilder {
	b := psql.Update("customers")
	b = setValue(b, "first_name", p.FirstName)
	b = setValue(b, "last_name", p.LastName)
	b = setValue(b, "email", p.Email)
	b = setValue(b, "phone", p.Phone)
	b = setValue(b, "company_name", p.CompanyName)
	b = setValue(b, "notes", p.Notes)
	b = setValue(b, "status", p.Status)
	return b.Set("updated_at", now).Where(sq.Eq{"tenant_id": tenantID, "id": id})
}

// Delete elimina el cliente; sus citas caen por ON DELETE CASCADE. Trabajos o facturas
// asociados lo impiden (RESTRICT → ErrConflict).
func (r *CustomerRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return wrapErr("delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cliente", id)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.TenantID, &c.CustomerNumber, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.CompanyName, &c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AddressRepo implementación de AddressRepository.
type AddressRepo struct {
	q Querier
}

// NewAddressRepository construye el adaptador.
func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

// Create persiste una dirección del cliente.
func (r *AddressRepo) Create(ctx context.Context, a *entity.Address) error {
	query := `
		INSERT INTO addresses (id, tenant_id, customer_id, street, city, state, zip_code, country, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.CustomerID, a.Street, a.City, a.State, a.ZipCode, a.Country, a.IsPrimary,
		a.CreatedAt, a.UpdatedAt,
	)
	return wrapErr("insert address", err)
}

const addressSelect = `
	SELECT id, tenant_id, customer_id, street, city, state, zip_code, country, is_primary, created_at, updated_at
	FROM addresses`

// GetByID obtiene una dirección del tenant; nil si no existe.
func (r *AddressRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Address, error) {
	a, err := scanAddress(r.q.QueryRow(ctx, addressSelect+` WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get address", err)
	}
	return a, nil
}

// ListByCustomer direcciones de un cliente, la más antigua primero.
func (r *AddressRepo) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*entity.Address, error) {
	rows, err := r.q.Query(ctx, addressSelect+` WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at`, tenantID, customerID)
	if err != nil {
		return nil, wrapErr("list addresses", err)
	}
	defer rows.Close()
	var list []*entity.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, wrapErr("scan address", err)
		}
		list = append(list, a)
	}
	return list, wrapErr("list addresses", rows.Err())
}

// HasPrimary indica si el cliente ya tiene dirección principal.
func (r *AddressRepo) HasPrimary(ctx context.Context, tenantID, customerID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM addresses WHERE tenant_id = $1 AND customer_id = $2 AND is_primary)`,
		tenantID, customerID,
	).Scan(&exists)
	if err != nil {
		return false, wrapErr("address primary", err)
	}
	return exists, nil
}

// DeleteByCustomer elimina las direcciones de un cliente.
func (r *AddressRepo) DeleteByCustomer(ctx context.Context, tenantID, customerID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM addresses WHERE tenant_id = $1 AND customer_id = $2`, tenantID, customerID)
	return wrapErr("delete addresses", err)
}

func scanAddress(row pgx.Row) (*entity.Address, error) {
	var a entity.Address
	err := row.Scan(&a.ID, &a.TenantID, &a.CustomerID, &a.Street, &a.City, &a.State, &a.ZipCode, &a.Country,
		&a.IsPrimary, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
