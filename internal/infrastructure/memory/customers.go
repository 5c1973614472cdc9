package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.AddressRepository  = (*AddressRepo)(nil)
)

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ v view }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.write(func(d *dataset) error {
		for _, other := range d.customers {
			if other.TenantID == c.TenantID && other.CustomerNumber == c.CustomerNumber {
				return domain.ErrDuplicate
			}
		}
		stored := *c
		stored.Addresses = nil
		d.customers[c.ID] = stored
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.v.read(func(d *dataset) {
		if c, ok := d.customers[id]; ok && c.TenantID == tenantID {
			out = &c
		}
	})
	return out, nil
}

func (r *CustomerRepo) List(_ context.Context, tenantID string, f repository.CustomerFilter, limit, offset int) ([]*entity.Customer, int, error) {
	var all []*entity.Customer
	search := strings.ToLower(f.Search)
	r.v.read(func(d *dataset) {
		for _, c := range d.customers {
			if c.TenantID != tenantID || (f.Status != "" && c.Status != f.Status) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(c.FirstName+" "+c.LastName+" "+c.Email+" "+c.Phone), search) {
				continue
			}
			c := c
			all = append(all, &c)
		}
	})
	sortByCreated(all, func(c *entity.Customer) int64 { return c.CreatedAt.UnixNano() })
	return paginate(all, limit, offset), len(all), nil
}

func (r *CustomerRepo) Update(_ context.Context, tenantID, id string, p entity.CustomerPatch) error {
	return r.v.write(func(d *dataset) error {
		c, ok := d.customers[id]
		if !ok || c.TenantID != tenantID {
			return domain.NotFound("cliente", id)
		}
		p.ApplyTo(&c)
		d.customers[id] = c
		return nil
	})
}

func (r *CustomerRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.v.write(func(d *dataset) error {
		c, ok := d.customers[id]
		if !ok || c.TenantID != tenantID {
			return domain.NotFound("cliente", id)
		}
		for _, j := range d.jobs {
			if j.CustomerID == id {
				return fmt.Errorf("%w: el cliente tiene trabajos asociados", domain.ErrConflict)
			}
		}
		for _, inv := range d.invoices {
			if inv.CustomerID == id {
				return fmt.Errorf("%w: el cliente tiene facturas asociadas", domain.ErrConflict)
			}
		}
		for apptID, a := range d.appointments {
			if a.CustomerID == id {
				delete(d.appointments, apptID)
			}
		}
		delete(d.customers, id)
		return nil
	})
}

// AddressRepo direcciones en memoria.
type AddressRepo struct{ v view }

func (r *AddressRepo) Create(_ context.Context, a *entity.Address) error {
	return r.v.write(func(d *dataset) error {
		if c, ok := d.customers[a.CustomerID]; !ok || c.TenantID != a.TenantID {
			return domain.NotFound("cliente", a.CustomerID)
		}
		d.addresses[a.ID] = *a
		return nil
	})
}

func (r *AddressRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Address, error) {
	var out *entity.Address
	r.v.read(func(d *dataset) {
		if a, ok := d.addresses[id]; ok && a.TenantID == tenantID {
			out = &a
		}
	})
	return out, nil
}

func (r *AddressRepo) ListByCustomer(_ context.Context, tenantID, customerID string) ([]*entity.Address, error) {
	var out []*entity.Address
	r.v.read(func(d *dataset) {
		for _, a := range d.addresses {
			if a.TenantID == tenantID && a.CustomerID == customerID {
				a := a
				out = append(out, &a)
			}
		}
	})
	sortByCreated(out, func(a *entity.Address) int64 { return -a.CreatedAt.UnixNano() })
	return out, nil
}

func (r *AddressRepo) HasPrimary(_ context.Context, tenantID, customerID string) (bool, error) {
	found := false
	r.v.read(func(d *dataset) {
		for _, a := range d.addresses {
			if a.TenantID == tenantID && a.CustomerID == customerID && a.IsPrimary {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r *AddressRepo) DeleteByCustomer(_ context.Context, tenantID, customerID string) error {
	return r.v.write(func(d *dataset) error {
		for id, a := range d.addresses {
			if a.TenantID == tenantID && a.CustomerID == customerID {
				delete(d.addresses, id)
			}
		}
		return nil
	})
}
