package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{2,63}$`)

const tenantCachePrefix = "tenant:"

// TenantUseCase alta y consulta de tenants. También actúa como directorio para el
// middleware: Resolve consulta primero la caché KV y luego el repositorio.
type TenantUseCase struct {
	repo  repository.TenantRepository
	cache ports.KVStore
	ttl   time.Duration
	log   *logger.Logger
}

// NewTenantUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewTenantUseCase(repo repository.TenantRepository, cache ports.KVStore, ttl time.Duration, log *logger.Logger) *TenantUseCase {
	return &TenantUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// Create registra un tenant nuevo (activo). Slug repetido → ErrConflict.
func (uc *TenantUseCase) Create(ctx context.Context, raw map[string]any) (*dto.TenantResponse, error) {
	p, err := tenantSchema.Validate(raw, validation.ModeCreate)
	if err != nil {
		return nil, err
	}
	slug := strings.ToLower(p.String("slug").OrElse(""))
	if !slugPattern.MatchString(slug) {
		return nil, validation.NewError(validation.FieldError{Field: "slug", Reason: validation.ReasonFormat})
	}
	now := time.Now().UTC()
	t := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      p.String("name").OrElse(""),
		Slug:      slug,
		Status:    entity.TenantActive,
		Locale:    p.String("locale").OrElse("en-US"),
		Timezone:  p.String("timezone").OrElse("UTC"),
		Currency:  strings.ToUpper(p.String("currency").OrElse("USD")),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := time.LoadLocation(t.Timezone); err != nil {
		return nil, validation.NewError(validation.FieldError{Field: "timezone", Reason: validation.ReasonFormat})
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	out := toTenantResponse(t)
	return &out, nil
}

// GetBySlug busca un tenant por slug.
func (uc *TenantUseCase) GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("tenant", slug)
	}
	out := toTenantResponse(t)
	return &out, nil
}

// Resolve devuelve el tenant del ID: ErrUnknownTenant si no existe, ErrInactiveTenant si
// está inactivo. Un fallo de la caché no impide la consulta al repositorio.
func (uc *TenantUseCase) Resolve(ctx context.Context, id string) (*entity.Tenant, error) {
	t := uc.cached(ctx, id)
	if t == nil {
		var err error
		if t, err = uc.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		if t == nil {
			return nil, domain.ErrUnknownTenant
		}
		uc.store(ctx, t)
	}
	if !t.IsActive() {
		return nil, domain.ErrInactiveTenant
	}
	return t, nil
}

func (uc *TenantUseCase) cached(ctx context.Context, id string) *entity.Tenant {
	if uc.cache == nil {
		return nil
	}
	raw, ok, err := uc.cache.Get(ctx, tenantCachePrefix+id)
	if err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", id).Msg("caché de tenants no disponible")
		return nil
	}
	if !ok {
		return nil
	}
	var t entity.Tenant
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil
	}
	return &t
}

func (uc *TenantUseCase) store(ctx context.Context, t *entity.Tenant) {
	if uc.cache == nil || uc.ttl <= 0 {
		return
	}
	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, tenantCachePrefix+t.ID, string(b), uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", t.ID).Msg("no se pudo cachear el tenant")
	}
}
