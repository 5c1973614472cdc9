// Package memory implementa todos los puertos de repositorio en memoria.
// Se usa en tests y con STORE_DRIVER=memory para desarrollo local.
// Las transacciones trabajan sobre una copia del estado que se publica solo al hacer commit.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type dataset struct {
	tenants      map[string]entity.Tenant
	users        map[string]entity.User
	customers    map[string]entity.Customer
	addresses    map[string]entity.Address
	appointments map[string]entity.Appointment
	jobs         map[string]entity.Job
	invoices     map[string]entity.Invoice
	lineItems    map[string][]entity.InvoiceLineItem // invoiceID -> líneas
	sequences    map[string]int64                    // tenantID|kind -> último valor
}

func newDataset() *dataset {
	return &dataset{
		tenants:      map[string]entity.Tenant{},
		users:        map[string]entity.User{},
		customers:    map[string]entity.Customer{},
		addresses:    map[string]entity.Address{},
		appointments: map[string]entity.Appointment{},
		jobs:         map[string]entity.Job{},
		invoices:     map[string]entity.Invoice{},
		lineItems:    map[string][]entity.InvoiceLineItem{},
		sequences:    map[string]int64{},
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.tenants {
		c.tenants[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.customers {
		c.customers[k] = v
	}
	for k, v := range d.addresses {
		c.addresses[k] = v
	}
	for k, v := range d.appointments {
		c.appointments[k] = v
	}
	for k, v := range d.jobs {
		c.jobs[k] = v
	}
	for k, v := range d.invoices {
		c.invoices[k] = v
	}
	for k, v := range d.lineItems {
		c.lineItems[k] = append([]entity.InvoiceLineItem(nil), v...)
	}
	for k, v := range d.sequences {
		c.sequences[k] = v
	}
	return c
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// view enlaza un repositorio al estado global (con lock) o a la copia de una transacción.
type view struct {
	s  *Store
	tx *dataset
}

func (v view) read(fn func(d *dataset)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.data)
}

func (v view) write(fn func(d *dataset) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.data)
}

// Run ejecuta fn sobre una copia del estado; si fn no falla, la copia reemplaza al estado.
// Las transacciones se serializan.
func (s *Store) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	v := view{s: s, tx: work}
	if err := fn(reposFor(v)); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Repos devuelve repositorios fuera de transacción.
func (s *Store) Repos() repository.TxRepos {
	return reposFor(view{s: s})
}

// Tenants repositorio de tenants.
func (s *Store) Tenants() *TenantRepo { return &TenantRepo{v: view{s: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{v: view{s: s}} }

func reposFor(v view) repository.TxRepos {
	return repository.TxRepos{
		Customers:    &CustomerRepo{v: v},
		Addresses:    &AddressRepo{v: v},
		Appointments: &AppointmentRepo{v: v},
		Jobs:         &JobRepo{v: v},
		Invoices:     &InvoiceRepo{v: v},
		Sequences:    &SequenceRepo{v: v},
		Users:        &UserRepo{v: v},
	}
}

// paginate aplica limit/offset sobre una lista ya ordenada.
func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}

func sortByCreated[T any](list []T, created func(T) int64) {
	sort.SliceStable(list, func(i, j int) bool { return created(list[i]) > created(list[j]) })
}
