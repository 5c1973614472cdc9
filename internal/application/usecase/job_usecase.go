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

// JobUseCase casos de uso de órdenes de trabajo.
type JobUseCase struct {
	runner repository.TxRunner
	repos  repository.TxRepos
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(runner repository.TxRunner, repos repository.TxRepos) *JobUseCase {
	return &JobUseCase{runner: runner, repos: repos}
}

// Create valida, comprueba referencias y crea el trabajo con número JOB-xxxxxx.
func (uc *JobUseCase) Create(ctx context.Context, tenantID, userID string, raw map[string]any) (*dto.JobResponse, error) {
	p, err := jobSchema.Validate(raw, validation.ModeCreate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	j := &entity.Job{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		CustomerID:        p.String("customerId").OrElse(""),
		Title:             p.String("title").OrElse(""),
		Description:       p.String("description").OrElse(""),
		Status:            p.String("status").OrElse(entity.JobScheduled),
		Priority:          p.String("priority").OrElse(entity.PriorityNormal),
		AddressID:         p.String("addressId").Ptr(),
		AssignedToID:      p.String("assignedToId").Ptr(),
		ScheduledDate:     p.Time("scheduledDate").Ptr(),
		EstimatedDuration: p.Int("estimatedDuration").OrElse(60),
		CreatedByID:       optionalID(userID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = createNumbered(ctx, uc.runner, tenantID, domain.SequenceJob, func(tx repository.TxRepos, number string) error {
		if err := checkRefs(ctx, tx, tenantID, j.CustomerID, j.CustomerID, j.AddressID, j.AssignedToID); err != nil {
			return err
		}
		j.JobNumber = number
		return tx.Jobs.Create(ctx, j)
	})
	if err != nil {
		return nil, err
	}
	out := toJobResponse(j)
	return &out, nil
}

// Get devuelve un trabajo del tenant.
func (uc *JobUseCase) Get(ctx context.Context, tenantID, id string) (*dto.JobResponse, error) {
	j, err := requireJob(ctx, uc.repos, tenantID, id)
	if err != nil {
		return nil, err
	}
	out := toJobResponse(j)
	return &out, nil
}

// List lista trabajos con filtros.
func (uc *JobUseCase) List(ctx context.Context, tenantID string, filter repository.JobFilter, page dto.PageRequest) (*dto.ListResponse[dto.JobResponse], error) {
	page = normalizePage(page)
	list, total, err := uc.repos.Jobs.List(ctx, tenantID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return listResponse(list, total, page, toJobResponse), nil
}

// Update aplica una actualización parcial del trabajo.
func (uc *JobUseCase) Update(ctx context.Context, tenantID, id string, raw map[string]any) (*dto.JobResponse, error) {
	p, err := jobSchema.Validate(raw, validation.ModeUpdate)
	if err != nil {
		return nil, err
	}
	jp := entity.JobPatch{
		Title:             p.String("title"),
		Description:       p.String("description"),
		Status:            p.String("status"),
		Priority:          p.String("priority"),
		AddressID:         p.String("addressId"),
		AssignedToID:      p.String("assignedToId"),
		ScheduledDate:     p.Time("scheduledDate"),
		EstimatedDuration: p.Int("estimatedDuration"),
	}
	return uc.update(ctx, tenantID, id, jp)
}

// Delete cancela el trabajo (borrado lógico: status CANCELLED).
func (uc *JobUseCase) Delete(ctx context.Context, tenantID, id string) error {
	_, err := uc.update(ctx, tenantID, id, entity.JobPatch{Status: patch.Set(entity.JobCancelled)})
	return err
}

func (uc *JobUseCase) update(ctx context.Context, tenantID, id string, jp entity.JobPatch) (*dto.JobResponse, error) {
	var updated entity.Job
	err := uc.runner.Run(ctx, func(tx repository.TxRepos) error {
		cur, err := requireJob(ctx, tx, tenantID, id)
		if err != nil {
			return err
		}
		var addressID, assignedTo *string
		if jp.AddressID.IsSet() {
			addressID = jp.AddressID.Ptr()
		}
		if jp.AssignedToID.IsSet() {
			assignedTo = jp.AssignedToID.Ptr()
		}
		if err := checkRefs(ctx, tx, tenantID, "", cur.CustomerID, addressID, assignedTo); err != nil {
			return err
		}
		if err := tx.Jobs.Update(ctx, tenantID, id, jp); err != nil {
			return err
		}
		updated = *cur
		jp.ApplyTo(&updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	out := toJobResponse(&updated)
	return &out, nil
}
