package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// AppointmentFilter filtros opcionales del listado de citas.
type AppointmentFilter struct {
	Status     string
	CustomerID string
	From       *time.Time // ScheduledStart >= From
	To         *time.Time // ScheduledStart < To
}

// AppointmentRepository define el puerto de persistencia para Appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *entity.Appointment) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Appointment, error)
	List(ctx context.Context, tenantID string, filter AppointmentFilter, limit, offset int) ([]*entity.Appointment, int, error)
	Update(ctx context.Context, tenantID, id string, p entity.AppointmentPatch) error
	Delete(ctx context.Context, tenantID, id string) error
}
