package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// JobFilter filtros opcionales del listado de trabajos.
type JobFilter struct {
	Status       string
	CustomerID   string
	AssignedToID string
}

// JobRepository define el puerto de persistencia para Job.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Job, error)
	List(ctx context.Context, tenantID string, filter JobFilter, limit, offset int) ([]*entity.Job, int, error)
	Update(ctx context.Context, tenantID, id string, p entity.JobPatch) error
}
