package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

type fixture struct {
	store        *memory.Store
	customers    *usecase.CustomerUseCase
	appointments *usecase.AppointmentUseCase
	jobs         *usecase.JobUseCase
	invoices     *usecase.InvoiceUseCase
	users        *usecase.UserUseCase
	pdf          *fakePDF
}

type fakePDF struct {
	calls int
}

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ *entity.Tenant, _ *entity.Customer) ([]byte, error) {
	f.calls++
	return []byte("%PDF-" + inv.InvoiceNumber), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()
	for _, id := range []string{tenantA, tenantB} {
		require.NoError(t, store.Tenants().Create(context.Background(), &entity.Tenant{
			ID: id, Name: id, Slug: id, Status: entity.TenantActive,
			Locale: "en-US", Timezone: "UTC", Currency: "USD", CreatedAt: now, UpdatedAt: now,
		}))
	}
	pdf := &fakePDF{}
	return &fixture{
		store:        store,
		customers:    usecase.NewCustomerUseCase(store, repos),
		appointments: usecase.NewAppointmentUseCase(store, repos),
		jobs:         usecase.NewJobUseCase(store, repos),
		invoices:     usecase.NewInvoiceUseCase(store, repos, store.Tenants(), pdf),
		users:        usecase.NewUserUseCase(store.Users()),
		pdf:          pdf,
	}
}

func (f *fixture) customer(t *testing.T, tenantID string, withAddress bool) *dto.CustomerResponse {
	t.Helper()
	raw := map[string]any{"firstName": "John", "lastName": "Smith", "email": "john@x.com", "phone": "555-1001"}
	if withAddress {
		raw["address"] = map[string]any{"street": "1 Elm St", "city": "Dallas"}
	}
	c, err := f.customers.Create(context.Background(), tenantID, raw)
	require.NoError(t, err)
	return c
}

func (f *fixture) user(t *testing.T, tenantID, email string) *dto.UserResponse {
	t.Helper()
	u, err := f.users.Create(context.Background(), tenantID, map[string]any{
		"email": email, "password": "password-123", "role": "technician",
	})
	require.NoError(t, err)
	return u
}

func requireFieldError(t *testing.T, err error, field, reason string) {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	for _, fe := range verr.Fields() {
		if fe.Field == field {
			require.Equal(t, reason, fe.Reason)
			return
		}
	}
	t.Fatalf("sin error para %s en %v", field, verr.Fields())
}
