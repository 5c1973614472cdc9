package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain"
)

// SchemaMigrator aplica migraciones pendientes y devuelve sus nombres.
type SchemaMigrator interface {
	Up(ctx context.Context) ([]string, error)
}

// AdminUseCase operaciones administrativas: migraciones y datos de demostración.
type AdminUseCase struct {
	migrator     SchemaMigrator
	users        *UserUseCase
	customers    *CustomerUseCase
	appointments *AppointmentUseCase
	jobs         *JobUseCase
	invoices     *InvoiceUseCase
}

// NewAdminUseCase construye el caso de uso. migrator nil = almacenamiento sin esquema (memoria).
func NewAdminUseCase(
	migrator SchemaMigrator,
	users *UserUseCase,
	customers *CustomerUseCase,
	appointments *AppointmentUseCase,
	jobs *JobUseCase,
	invoices *InvoiceUseCase,
) *AdminUseCase {
	return &AdminUseCase{
		migrator:     migrator,
		users:        users,
		customers:    customers,
		appointments: appointments,
		jobs:         jobs,
		invoices:     invoices,
	}
}

// Migrate aplica las migraciones pendientes.
func (uc *AdminUseCase) Migrate(ctx context.Context) (*dto.AdminResult, error) {
	if uc.migrator == nil {
		return &dto.AdminResult{Status: "skipped"}, nil
	}
	applied, err := uc.migrator.Up(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AdminResult{Status: "ok", Applied: applied}, nil
}

// Seed crea datos de demostración en el tenant pasando por los mismos casos de uso que la API,
// así que validación, consecutivos y referencias se comportan igual. Devuelve lo creado.
func (uc *AdminUseCase) Seed(ctx context.Context, tenantID string) (*dto.AdminResult, error) {
	var created []string

	tech, err := uc.users.Create(ctx, tenantID, map[string]any{
		"email": "tech@demo.local", "password": "demo-password", "name": "Demo Technician", "role": "technician",
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		tech = nil
	case err != nil:
		return nil, err
	default:
		created = append(created, tech.Email)
	}

	cust, err := uc.customers.Create(ctx, tenantID, map[string]any{
		"firstName": "Jane", "lastName": "Doe", "email": "jane.doe@example.com", "phone": "+1 555 0100",
		"address": map[string]any{"street": "100 Main St", "city": "Austin", "state": "TX", "zipCode": "78701"},
	})
	if err != nil {
		return nil, err
	}
	created = append(created, cust.CustomerNumber)

	job := map[string]any{
		"title": "AC maintenance", "customerId": cust.ID, "priority": "HIGH",
		"addressId": cust.Addresses[0].ID, "scheduledDate": "2030-01-15",
	}
	appt := map[string]any{
		"title": "AC maintenance visit", "customerId": cust.ID, "addressId": cust.Addresses[0].ID,
		"scheduledStart": "2030-01-15T09:00:00Z", "duration": 90,
	}
	if tech != nil {
		job["assignedToId"] = tech.ID
		appt["assignedToId"] = tech.ID
	}
	j, err := uc.jobs.Create(ctx, tenantID, "", job)
	if err != nil {
		return nil, err
	}
	created = append(created, j.JobNumber)
	if _, err := uc.appointments.Create(ctx, tenantID, "", appt); err != nil {
		return nil, err
	}

	inv, err := uc.invoices.Create(ctx, tenantID, map[string]any{
		"customerId": cust.ID, "jobId": j.ID, "taxRate": "8.25",
		"lineItems": []any{
			map[string]any{"description": "Labor", "quantity": "2", "unitPrice": "85.00"},
			map[string]any{"description": "Air filter", "quantity": "1", "unitPrice": "24.99"},
		},
	})
	if err != nil {
		return nil, err
	}
	created = append(created, inv.InvoiceNumber)
	return &dto.AdminResult{Status: "ok", Applied: created}, nil
}
