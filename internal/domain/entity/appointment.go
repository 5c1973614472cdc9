package entity

import (
	"time"

	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// Estados de cita.
const (
	AppointmentScheduled  = "SCHEDULED"
	AppointmentConfirmed  = "CONFIRMED"
	AppointmentInProgress = "IN_PROGRESS"
	AppointmentCompleted  = "COMPLETED"
	AppointmentCancelled  = "CANCELLED"
	AppointmentNoShow     = "NO_SHOW"
)

// AppointmentStatuses valores válidos de Appointment.Status.
var AppointmentStatuses = []string{
	AppointmentScheduled, AppointmentConfirmed, AppointmentInProgress,
	AppointmentCompleted, AppointmentCancelled, AppointmentNoShow,
}

// DefaultAppointmentDuration duración en minutos cuando no se envía.
const DefaultAppointmentDuration = 60

// Appointment cita agendada con un cliente.
type Appointment struct {
	ID             string
	TenantID       string
	CustomerID     string
	Title          string
	Description    string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Duration       int // minutos
	Status         string
	AssignedToID   *string
	AddressID      *string
	Notes          string
	CreatedByID    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AppointmentPatch actualización parcial de una cita.
type AppointmentPatch struct {
	Title          patch.Value[string]
	Description    patch.Value[string]
	ScheduledStart patch.Value[time.Time]
	ScheduledEnd   patch.Value[time.Time]
	Duration       patch.Value[int]
	Status         patch.Value[string]
	CustomerID     patch.Value[string]
	AssignedToID   patch.Value[string]
	AddressID      patch.Value[string]
	Notes          patch.Value[string]
}

// ApplyTo aplica los campos presentes sobre a.
func (p AppointmentPatch) ApplyTo(a *Appointment) {
	p.Title.Apply(&a.Title)
	p.Description.Apply(&a.Description)
	p.ScheduledStart.Apply(&a.ScheduledStart)
	p.ScheduledEnd.Apply(&a.ScheduledEnd)
	p.Duration.Apply(&a.Duration)
	p.Status.Apply(&a.Status)
	p.CustomerID.Apply(&a.CustomerID)
	p.AssignedToID.ApplyPtr(&a.AssignedToID)
	p.AddressID.ApplyPtr(&a.AddressID)
	p.Notes.Apply(&a.Notes)
}
