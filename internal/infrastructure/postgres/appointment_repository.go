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

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

var appointmentColumns = []string{
	"id", "tenant_id", "customer_id", "title", "description", "scheduled_start", "scheduled_end",
	"duration", "status", "assigned_to_id", "address_id", "notes", "created_by_id", "created_at", "updated_at",
}

// AppointmentRepo implementación de AppointmentRepository.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// Create persiste una cita.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	query, args, err := psql.Insert("appointments").Columns(appointmentColumns...).Values(
		a.ID, a.TenantID, a.CustomerID, a.Title, a.Description, a.ScheduledStart, a.ScheduledEnd,
		a.Duration, a.Status, a.AssignedToID, a.AddressID, a.Notes, a.CreatedByID, a.CreatedAt, a.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert appointment: %w", err)
	}
	_, err = r.q.Exec(ctx, query, args...)
	return wrapErr("insert appointment", err)
}

// GetByID obtiene una cita del tenant; nil si no existe.
func (r *AppointmentRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Appointment, error) {
	query, args, err := psql.Select(appointmentColumns...).From("appointments").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment: %w", err)
	}
	a, err := scanAppointment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get appointment", err)
	}
	return a, nil
}

// List citas del tenant ordenadas por inicio.
func (r *AppointmentRepo) List(ctx context.Context, tenantID string, f repository.AppointmentFilter, limit, offset int) ([]*entity.Appointment, int, error) {
	var list []*entity.Appointment
	total, err := countAndList(ctx, r.q, appointmentListBase(tenantID, f), appointmentColumns, "scheduled_start ASC", limit, offset,
		func(rows pgx.Rows) error {
			a, err := scanAppointment(rows)
			if err != nil {
				return err
			}
			list = append(list, a)
			return nil
		})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func appointmentListBase(tenantID string, f repository.AppointmentFilter) sq.SelectBuilder {
	b := psql.Select().From("appointments").Where(sq.Eq{"tenant_id": tenantID})
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.CustomerID != "" {
		b = b.Where(sq.Eq{"customer_id": f.CustomerID})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"scheduled_start": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.Lt{"scheduled_start": *f.To})
	}
	return b
}

// Update aplica solo los campos presentes; null en referencias escribe NULL.
func (r *AppointmentRepo) Update(ctx context.Context, tenantID, id string, p entity.AppointmentPatch) error {
	return execUpdate(ctx, r.q, appointmentUpdate(tenantID, id, p, time.Now()), "cita", id)
}

func appointmentUpdate(tenantID, id string, p entity.AppointmentPatch, now time.Time) sq.UpdateBuilder {
	b := psql.Update("appointments")
	b = setValue(b, "title", p.Title)
	b = setValue(b, "description", p.Description)
	b = setValue(b, "scheduled_start", p.ScheduledStart)
	b = setValue(b, "scheduled_end", p.ScheduledEnd)
	b = setValue(b, "duration", p.Duration)
	b = setValue(b, "status", p.Status)
	b = setValue(b, "customer_id", p.CustomerID)
	b = setNullable(b, "assigned_to_id", p.AssignedToID)
	b = setNullable(b, "address_id", p.AddressID)
	b = setValue(b, "notes", p.Notes)
	return b.Set("updated_at", now).Where(sq.Eq{"tenant_id": tenantID, "id": id})
}

// Delete elimina la cita.
func (r *AppointmentRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return wrapErr("delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cita", id)
	}
	return nil
}

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(&a.ID, &a.TenantID, &a.CustomerID, &a.Title, &a.Description, &a.ScheduledStart, &a.ScheduledEnd,
		&a.Duration, &a.Status, &a.AssignedToID, &a.AddressID, &a.Notes, &a.CreatedByID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
