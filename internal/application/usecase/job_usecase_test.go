package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

func TestJobCreate_NumeroYDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, tenantA, true)
	tech := f.user(t, tenantA, "tech@a.com")

	j, err := f.jobs.Create(ctx, tenantA, tech.ID, map[string]any{
		"title": "Cambio de compresor", "customerId": c.ID,
		"addressId": c.Addresses[0].ID, "assignedToId": tech.ID, "scheduledDate": "2030-04-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "JOB-000001", j.JobNumber)
	assert.Equal(t, entity.JobScheduled, j.Status)
	assert.Equal(t, entity.PriorityNormal, j.Priority)
	assert.Equal(t, 60, j.EstimatedDuration)
	require.NotNil(t, j.ScheduledDate)
	assert.Equal(t, mustTime(t, "2030-04-10T00:00:00Z"), *j.ScheduledDate)
	require.NotNil(t, j.CreatedByID)
	assert.Equal(t, tech.ID, *j.CreatedByID)

	next, err := f.jobs.Create(ctx, tenantA, "", map[string]any{"title": "Otra", "customerId": c.ID})
	require.NoError(t, err)
	assert.Equal(t, "JOB-000002", next.JobNumber)
}

func TestJobCreate_PrioridadInvalida(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, tenantA, false)

	_, err := f.jobs.Create(context.Background(), tenantA, "", map[string]any{
		"title": "x", "customerId": c.ID, "priority": "CRITICAL", "estimatedDuration": 0,
	})
	requireFieldError(t, err, "priority", "valor no permitido")
	requireFieldError(t, err, "estimatedDuration", "fuera de rango")
}

func TestJobCreate_ReferenciaInvalidaNoConsumeNumero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, tenantA, false)

	_, err := f.jobs.Create(ctx, tenantA, "", map[string]any{"title": "x", "customerId": c.ID, "assignedToId": "nadie"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	j, err := f.jobs.Create(ctx, tenantA, "", map[string]any{"title": "x", "customerId": c.ID})
	require.NoError(t, err)
	assert.Equal(t, "JOB-000001", j.JobNumber)
}

func TestJobUpdate_Parcial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, tenantA, true)
	tech := f.user(t, tenantA, "tech@a.com")
	j, err := f.jobs.Create(ctx, tenantA, "", map[string]any{
		"title": "Revisión", "customerId": c.ID, "description": "ruido", "scheduledDate": "2030-04-10",
	})
	require.NoError(t, err)

	updated, err := f.jobs.Update(ctx, tenantA, j.ID, map[string]any{
		"status": "in_progress", "assignedToId": tech.ID, "scheduledDate": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.JobInProgress, updated.Status)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, tech.ID, *updated.AssignedToID)
	assert.Nil(t, updated.ScheduledDate)

	got, err := f.jobs.Get(ctx, tenantA, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "ruido", got.Description)
	assert.Equal(t, j.JobNumber, got.JobNumber)
	assert.Nil(t, got.ScheduledDate)
	assert.Equal(t, updated.AssignedToID, got.AssignedToID)
}

func TestJobDelete_Cancela(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, tenantA, false)
	j, err := f.jobs.Create(ctx, tenantA, "", map[string]any{"title": "x", "customerId": c.ID})
	require.NoError(t, err)

	require.NoError(t, f.jobs.Delete(ctx, tenantA, j.ID))

	got, err := f.jobs.Get(ctx, tenantA, j.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobCancelled, got.Status)

	cancelled, err := f.jobs.List(ctx, tenantA, repository.JobFilter{Status: entity.JobCancelled}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled.Page.Total)
}

func TestJob_OtroTenantEsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, tenantB, false)
	j, err := f.jobs.Create(ctx, tenantB, "", map[string]any{"title": "x", "customerId": c.ID})
	require.NoError(t, err)

	_, err = f.jobs.Get(ctx, tenantA, j.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.jobs.Update(ctx, tenantA, j.ID, map[string]any{"title": "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.jobs.Delete(ctx, tenantA, j.ID), domain.ErrNotFound)
}
