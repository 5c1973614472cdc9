package dto

import "time"

// AppointmentResponse cita en respuestas.
type AppointmentResponse struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenantId"`
	CustomerID     string    `json:"customerId"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
	Duration       int       `json:"duration"`
	Status         string    `json:"status"`
	AssignedToID   *string   `json:"assignedToId,omitempty"`
	AddressID      *string   `json:"addressId,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedByID    *string   `json:"createdById,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
