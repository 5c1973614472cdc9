package entity

import (
	"time"

	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// Estados de cliente.
const (
	CustomerActive   = "ACTIVE"
	CustomerInactive = "INACTIVE"
)

// Customer representa un cliente del tenant.
type Customer struct {
	ID             string
	TenantID       string
	CustomerNumber string // CUST-000001, derivado al crear
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CompanyName    string
	Notes          string
	Status         string
	Addresses      []*Address
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerPatch actualización parcial de un cliente.
type CustomerPatch struct {
	FirstName   patch.Value[string]
	LastName    patch.Value[string]
	Email       patch.Value[string]
	Phone       patch.Value[string]
	CompanyName patch.Value[string]
	Notes       patch.Value[string]
	Status      patch.Value[string]
}

// ApplyTo aplica los campos presentes sobre c.
func (p CustomerPatch) ApplyTo(c *Customer) {
	p.FirstName.Apply(&c.FirstName)
	p.LastName.Apply(&c.LastName)
	p.Email.Apply(&c.Email)
	p.Phone.Apply(&c.Phone)
	p.CompanyName.Apply(&c.CompanyName)
	p.Notes.Apply(&c.Notes)
	p.Status.Apply(&c.Status)
}
