package dto

import "time"

// JobResponse trabajo en respuestas.
type JobResponse struct {
	ID                string     `json:"id"`
	TenantID          string     `json:"tenantId"`
	JobNumber         string     `json:"jobNumber"`
	CustomerID        string     `json:"customerId"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	AddressID         *string    `json:"addressId,omitempty"`
	AssignedToID      *string    `json:"assignedToId,omitempty"`
	ScheduledDate     *time.Time `json:"scheduledDate,omitempty"`
	EstimatedDuration int        `json:"estimatedDuration"`
	CreatedByID       *string    `json:"createdById,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
