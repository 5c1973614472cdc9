package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

var jobColumns = []string{
	"id", "tenant_id", "job_number", "customer_id", "title", "description", "status", "priority",
	"address_id", "assigned_to_id", "scheduled_date", "estimated_duration", "created_by_id", "created_at", "updated_at",
}

// JobRepo implementación de JobRepository.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persiste un trabajo.
func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	query, args, err := psql.Insert("jobs").Columns(jobColumns...).Values(
		j.ID, j.TenantID, j.JobNumber, j.CustomerID, j.Title, j.Description, j.Status, j.Priority,
		j.AddressID, j.AssignedToID, j.ScheduledDate, j.EstimatedDuration, j.CreatedByID, j.CreatedAt, j.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert job: %w", err)
	}
	_, err = r.q.Exec(ctx, query, args...)
	return wrapErr("insert job", err)
}

// GetByID obtiene un trabajo del tenant; nil si no existe.
func (r *JobRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Job, error) {
	query, args, err := psql.Select(jobColumns...).From("jobs").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get job: %w", err)
	}
	j, err := scanJob(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get job", err)
	}
	return j, nil
}

// List trabajos del tenant, más recientes primero.
func (r *JobRepo) List(ctx context.Context, tenantID string, f repository.JobFilter, limit, offset int) ([]*entity.Job, int, error) {
	b := psql.Select().From("jobs").Where(sq.Eq{"tenant_id": tenantID})
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.CustomerID != "" {
		b = b.Where(sq.Eq{"customer_id": f.CustomerID})
	}
	if f.AssignedToID != "" {
		b = b.Where(sq.Eq{"assigned_to_id": f.AssignedToID})
	}
	var list []*entity.Job
	total, err := countAndList(ctx, r.q, b, jobColumns, "created_at DESC", limit, offset, func(rows pgx.Rows) error {
		j, err := scanJob(rows)
		if err != nil {
			return err
		}
		list = append(list, j)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update aplica solo los campos presentes.
func (r *JobRepo) Update(ctx context.Context, tenantID, id string, p entity.JobPatch) error {
	return execUpdate(ctx, r.q, jobUpdate(tenantID, id, p, time.Now()), "trabajo", id)
}

func jobUpdate(tenantID, id string, p entity.JobPatch, now time.Time) sq.UpdateBuilder {
	b := psql.Update("jobs")
	b = setValue(b, "title", p.Title)
	b = setValue(b, "description", p.Description)
	b = setValue(b, "status", p.Status)
	b = setValue(b, "priority", p.Priority)
	b = setNullable(b, "address_id", p.AddressID)
	b = setNullable(b, "assigned_to_id", p.AssignedToID)
	b = setNullable(b, "scheduled_date", p.ScheduledDate)
	b = setValue(b, "estimated_duration", p.EstimatedDuration)
	return b.Set("updated_at", now).Where(sq.Eq{"tenant_id": tenantID, "id": id})
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(&j.ID, &j.TenantID, &j.JobNumber, &j.CustomerID, &j.Title, &j.Description, &j.Status, &j.Priority,
		&j.AddressID, &j.AssignedToID, &j.ScheduledDate, &j.EstimatedDuration, &j.CreatedByID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
