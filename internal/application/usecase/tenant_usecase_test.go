package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/kv"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

func newTenantUseCase(t *testing.T) (*usecase.TenantUseCase, *memory.Store, *kv.MemoryKV) {
	t.Helper()
	store := memory.NewStore()
	cache := kv.NewMemoryKV()
	return usecase.NewTenantUseCase(store.Tenants(), cache, time.Minute, logger.Nop()), store, cache
}

func TestTenantCreate(t *testing.T) {
	uc, _, _ := newTenantUseCase(t)
	ctx := context.Background()

	tn, err := uc.Create(ctx, map[string]any{"name": "Acme HVAC", "slug": "Acme-HVAC", "timezone": "America/Chicago", "currency": "usd"})
	require.NoError(t, err)
	assert.Equal(t, "acme-hvac", tn.Slug)
	assert.Equal(t, entity.TenantActive, tn.Status)
	assert.Equal(t, "USD", tn.Currency)
	assert.Equal(t, "en-US", tn.Locale)

	_, err = uc.Create(ctx, map[string]any{"name": "Otra", "slug": "acme-hvac"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := uc.GetBySlug(ctx, "ACME-hvac")
	require.NoError(t, err)
	assert.Equal(t, tn.ID, got.ID)

	_, err = uc.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTenantCreate_Validacion(t *testing.T) {
	uc, _, _ := newTenantUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, map[string]any{"name": "X", "slug": "con espacios"})
	requireFieldError(t, err, "slug", "formato inválido")

	_, err = uc.Create(ctx, map[string]any{"name": "X", "slug": "ok-slug", "timezone": "Mars/Olympus"})
	requireFieldError(t, err, "timezone", "formato inválido")
}

func TestTenantResolve(t *testing.T) {
	uc, store, cache := newTenantUseCase(t)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, store.Tenants().Create(ctx, &entity.Tenant{ID: "t-on", Slug: "on", Status: entity.TenantActive, CreatedAt: now}))
	require.NoError(t, store.Tenants().Create(ctx, &entity.Tenant{ID: "t-off", Slug: "off", Status: entity.TenantInactive, CreatedAt: now}))

	_, err := uc.Resolve(ctx, "t-missing")
	assert.ErrorIs(t, err, domain.ErrUnknownTenant)

	_, err = uc.Resolve(ctx, "t-off")
	assert.ErrorIs(t, err, domain.ErrInactiveTenant)

	tn, err := uc.Resolve(ctx, "t-on")
	require.NoError(t, err)
	assert.Equal(t, "on", tn.Slug)

	raw, ok, err := cache.Get(ctx, "tenant:t-on")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"Slug":"on"`)
}

func TestTenantResolve_UsaCache(t *testing.T) {
	uc, _, cache := newTenantUseCase(t)
	ctx := context.Background()
	// Solo en caché: el repositorio no lo conoce.
	require.NoError(t, cache.Set(ctx, "tenant:t-cached", `{"ID":"t-cached","Slug":"cached","Status":"active"}`, time.Minute))

	tn, err := uc.Resolve(ctx, "t-cached")
	require.NoError(t, err)
	assert.Equal(t, "cached", tn.Slug)

	require.NoError(t, cache.Del(ctx, "tenant:t-cached"))
	_, err = uc.Resolve(ctx, "t-cached")
	assert.ErrorIs(t, err, domain.ErrUnknownTenant)
}
