package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// AppointmentUseCase casos de uso de citas.
type AppointmentUseCase struct {
	runner repository.TxRunner
	repos  repository.TxRepos
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(runner repository.TxRunner, repos repository.TxRepos) *AppointmentUseCase {
	return &AppointmentUseCase{runner: runner, repos: repos}
}

// Create valida, comprueba referencias y crea la cita. scheduledEnd ausente se deriva de
// scheduledStart + duration; si llega scheduledEnd sin duration, la duración se deriva del rango.
// Si llegan ambos y no coinciden, es un error de validación en duration.
func (uc *AppointmentUseCase) Create(ctx context.Context, tenantID, userID string, raw map[string]any) (*dto.AppointmentResponse, error) {
	p, err := appointmentSchema.Validate(raw, validation.ModeCreate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &entity.Appointment{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		CustomerID:     p.String("customerId").OrElse(""),
		Title:          p.String("title").OrElse(""),
		Description:    p.String("description").OrElse(""),
		ScheduledStart: p.Time("scheduledStart").OrElse(time.Time{}),
		Duration:       p.Int("duration").OrElse(entity.DefaultAppointmentDuration),
		Status:         p.String("status").OrElse(entity.AppointmentScheduled),
		AssignedToID:   p.String("assignedToId").Ptr(),
		AddressID:      p.String("addressId").Ptr(),
		Notes:          p.String("notes").OrElse(""),
		CreatedByID:    optionalID(userID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if end, ok := p.Time("scheduledEnd").Get(); ok {
		a.ScheduledEnd = end
		if raw["duration"] == nil {
			a.Duration = int(end.Sub(a.ScheduledStart) / time.Minute)
		}
	} else {
		a.ScheduledEnd = a.ScheduledStart.Add(time.Duration(a.Duration) * time.Minute)
	}
	if err := checkSchedule(a); err != nil {
		return nil, err
	}

	err = uc.runner.Run(ctx, func(tx repository.TxRepos) error {
		if err := checkRefs(ctx, tx, tenantID, a.CustomerID, a.CustomerID, a.AddressID, a.AssignedToID); err != nil {
			return err
		}
		return tx.Appointments.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	out := toAppointmentResponse(a)
	return &out, nil
}

// Get devuelve una cita del tenant.
func (uc *AppointmentUseCase) Get(ctx context.Context, tenantID, id string) (*dto.AppointmentResponse, error) {
	a, err := uc.load(ctx, uc.repos, tenantID, id)
	if err != nil {
		return nil, err
	}
	out := toAppointmentResponse(a)
	return &out, nil
}

// List lista citas por rango y estado.
func (uc *AppointmentUseCase) List(ctx context.Context, tenantID string, filter repository.AppointmentFilter, page dto.PageRequest) (*dto.ListResponse[dto.AppointmentResponse], error) {
	page = normalizePage(page)
	list, total, err := uc.repos.Appointments.List(ctx, tenantID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return listResponse(list, total, page, toAppointmentResponse), nil
}

// Update aplica una actualización parcial. Si cambia el inicio o la duración y no llega
// scheduledEnd, el fin se recalcula; si llega solo scheduledEnd, se recalcula la duración.
func (uc *AppointmentUseCase) Update(ctx context.Context, tenantID, id string, raw map[string]any) (*dto.AppointmentResponse, error) {
	p, err := appointmentSchema.Validate(raw, validation.ModeUpdate)
	if err != nil {
		return nil, err
	}
	ap := entity.AppointmentPatch{
		Title:          p.String("title"),
		Description:    p.String("description"),
		ScheduledStart: p.Time("scheduledStart"),
		ScheduledEnd:   p.Time("scheduledEnd"),
		Duration:       p.Int("duration"),
		Status:         p.String("status"),
		CustomerID:     p.String("customerId"),
		AssignedToID:   p.String("assignedToId"),
		AddressID:      p.String("addressId"),
		Notes:          p.String("notes"),
	}

	var updated entity.Appointment
	err = uc.runner.Run(ctx, func(tx repository.TxRepos) error {
		cur, err := uc.load(ctx, tx, tenantID, id)
		if err != nil {
			return err
		}
		updated = *cur
		ap.ApplyTo(&updated)
		switch {
		case ap.ScheduledEnd.IsSet() && !ap.Duration.IsSet():
			ap.Duration = patch.Set(int(updated.ScheduledEnd.Sub(updated.ScheduledStart) / time.Minute))
		case !ap.ScheduledEnd.IsSet() && (ap.ScheduledStart.IsSet() || ap.Duration.IsSet()):
			ap.ScheduledEnd = patch.Set(updated.ScheduledStart.Add(time.Duration(updated.Duration) * time.Minute))
		}
		ap.ApplyTo(&updated)
		if err := checkSchedule(&updated); err != nil {
			return err
		}

		// Solo se comprueban las referencias que cambian.
		var addressID, assignedTo *string
		if ap.AddressID.IsSet() || (ap.CustomerID.IsSet() && updated.AddressID != nil) {
			addressID = updated.AddressID
		}
		if ap.AssignedToID.IsSet() {
			assignedTo = updated.AssignedToID
		}
		customerID := ""
		if ap.CustomerID.IsSet() {
			customerID = updated.CustomerID
		}
		if err := checkRefs(ctx, tx, tenantID, customerID, updated.CustomerID, addressID, assignedTo); err != nil {
			return err
		}
		return tx.Appointments.Update(ctx, tenantID, id, ap)
	})
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	out := toAppointmentResponse(&updated)
	return &out, nil
}

// Delete elimina la cita.
func (uc *AppointmentUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repos.Appointments.Delete(ctx, tenantID, id)
}

func (uc *AppointmentUseCase) load(ctx context.Context, tx repository.TxRepos, tenantID, id string) (*entity.Appointment, error) {
	a, err := tx.Appointments.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("cita", id)
	}
	return a, nil
}

func checkSchedule(a *entity.Appointment) error {
	if !a.ScheduledEnd.After(a.ScheduledStart) {
		return validation.NewError(validation.FieldError{Field: "scheduledEnd", Reason: validation.ReasonRange})
	}
	// duration y scheduledEnd enviados juntos deben describir el mismo rango.
	if int(a.ScheduledEnd.Sub(a.ScheduledStart)/time.Minute) != a.Duration {
		return validation.NewError(validation.FieldError{Field: "duration", Reason: validation.ReasonRange})
	}
	return nil
}
