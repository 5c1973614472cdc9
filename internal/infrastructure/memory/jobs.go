package memory

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo trabajos en memoria.
type JobRepo struct{ v view }

func (r *JobRepo) Create(_ context.Context, j *entity.Job) error {
	return r.v.write(func(d *dataset) error {
		for _, other := range d.jobs {
			if other.TenantID == j.TenantID && other.JobNumber == j.JobNumber {
				return domain.ErrDuplicate
			}
		}
		d.jobs[j.ID] = *j
		return nil
	})
}

func (r *JobRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Job, error) {
	var out *entity.Job
	r.v.read(func(d *dataset) {
		if j, ok := d.jobs[id]; ok && j.TenantID == tenantID {
			out = &j
		}
	})
	return out, nil
}

func (r *JobRepo) List(_ context.Context, tenantID string, f repository.JobFilter, limit, offset int) ([]*entity.Job, int, error) {
	var all []*entity.Job
	r.v.read(func(d *dataset) {
		for _, j := range d.jobs {
			if j.TenantID != tenantID ||
				(f.Status != "" && j.Status != f.Status) ||
				(f.CustomerID != "" && j.CustomerID != f.CustomerID) ||
				(f.AssignedToID != "" && (j.AssignedToID == nil || *j.AssignedToID != f.AssignedToID)) {
				continue
			}
			j := j
			all = append(all, &j)
		}
	})
	sortByCreated(all, func(j *entity.Job) int64 { return j.CreatedAt.UnixNano() })
	return paginate(all, limit, offset), len(all), nil
}

func (r *JobRepo) Update(_ context.Context, tenantID, id string, p entity.JobPatch) error {
	return r.v.write(func(d *dataset) error {
		j, ok := d.jobs[id]
		if !ok || j.TenantID != tenantID {
			return domain.NotFound("trabajo", id)
		}
		p.ApplyTo(&j)
		d.jobs[id] = j
		return nil
	})
}
