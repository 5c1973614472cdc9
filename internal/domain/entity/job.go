package entity

import (
	"time"

	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// Estados de trabajo.
const (
	JobScheduled  = "SCHEDULED"
	JobInProgress = "IN_PROGRESS"
	JobOnHold     = "ON_HOLD"
	JobCompleted  = "COMPLETED"
	JobCancelled  = "CANCELLED"
)

// JobStatuses valores válidos de Job.Status.
var JobStatuses = []string{JobScheduled, JobInProgress, JobOnHold, JobCompleted, JobCancelled}

// Prioridades de trabajo.
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// JobPriorities valores válidos de Job.Priority.
var JobPriorities = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

// Job orden de trabajo en campo.
type Job struct {
	ID                string
	TenantID          string
	JobNumber         string // JOB-000001
	CustomerID        string
	Title             string
	Description       string
	Status            string
	Priority          string
	AddressID         *string
	AssignedToID      *string
	ScheduledDate     *time.Time
	EstimatedDuration int // minutos
	CreatedByID       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// JobPatch actualización parcial de un trabajo.
type JobPatch struct {
	Title             patch.Value[string]
	Description       patch.Value[string]
	Status            patch.Value[string]
	Priority          patch.Value[string]
	AddressID         patch.Value[string]
	AssignedToID      patch.Value[string]
	ScheduledDate     patch.Value[time.Time]
	EstimatedDuration patch.Value[int]
}

// ApplyTo aplica los campos presentes sobre j.
func (p JobPatch) ApplyTo(j *Job) {
	p.Title.Apply(&j.Title)
	p.Description.Apply(&j.Description)
	p.Status.Apply(&j.Status)
	p.Priority.Apply(&j.Priority)
	p.AddressID.ApplyPtr(&j.AddressID)
	p.AssignedToID.ApplyPtr(&j.AssignedToID)
	p.ScheduledDate.ApplyPtr(&j.ScheduledDate)
	p.EstimatedDuration.Apply(&j.EstimatedDuration)
}
