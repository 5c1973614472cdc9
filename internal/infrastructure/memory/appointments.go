package memory

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo citas en memoria.
type AppointmentRepo struct{ v view }

func (r *AppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	return r.v.write(func(d *dataset) error {
		d.appointments[a.ID] = *a
		return nil
	})
}

func (r *AppointmentRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Appointment, error) {
	var out *entity.Appointment
	r.v.read(func(d *dataset) {
		if a, ok := d.appointments[id]; ok && a.TenantID == tenantID {
			out = &a
		}
	})
	return out, nil
}

func (r *AppointmentRepo) List(_ context.Context, tenantID string, f repository.AppointmentFilter, limit, offset int) ([]*entity.Appointment, int, error) {
	var all []*entity.Appointment
	r.v.read(func(d *dataset) {
		for _, a := range d.appointments {
			if a.TenantID != tenantID {
				continue
			}
			if f.Status != "" && a.Status != f.Status {
				continue
			}
			if f.CustomerID != "" && a.CustomerID != f.CustomerID {
				continue
			}
			if f.From != nil && a.ScheduledStart.Before(*f.From) {
				continue
			}
			if f.To != nil && !a.ScheduledStart.Before(*f.To) {
				continue
			}
			a := a
			all = append(all, &a)
		}
	})
	// Orden cronológico por inicio, igual que el adaptador Postgres.
	sortByCreated(all, func(a *entity.Appointment) int64 { return -a.ScheduledStart.UnixNano() })
	return paginate(all, limit, offset), len(all), nil
}

func (r *AppointmentRepo) Update(_ context.Context, tenantID, id string, p entity.AppointmentPatch) error {
	return r.v.write(func(d *dataset) error {
		a, ok := d.appointments[id]
		if !ok || a.TenantID != tenantID {
			return domain.NotFound("cita", id)
		}
		p.ApplyTo(&a)
		d.appointments[id] = a
		return nil
	})
}

func (r *AppointmentRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.v.write(func(d *dataset) error {
		a, ok := d.appointments[id]
		if !ok || a.TenantID != tenantID {
			return domain.NotFound("cita", id)
		}
		delete(d.appointments, id)
		return nil
	})
}
