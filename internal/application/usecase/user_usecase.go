package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

const minPasswordLen = 8

// UserUseCase aplica reglas de negocio para usuarios del tenant.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create valida, hashea el password con bcrypt y persiste el usuario.
// Email repetido en el tenant → domain.ErrEmailAlreadyExists.
func (uc *UserUseCase) Create(ctx context.Context, tenantID string, raw map[string]any) (*dto.UserResponse, error) {
	p, err := userSchema.Validate(raw, validation.ModeCreate)
	if err != nil {
		return nil, err
	}
	password := p.String("password").OrElse("")
	if len(password) < minPasswordLen {
		return nil, validation.NewError(validation.FieldError{Field: "password", Reason: validation.ReasonRange})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	email := p.String("email").OrElse("")
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         p.String("name").OrElse(email),
		Role:         p.String("role").OrElse(entity.RoleTechnician),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// GetByID obtiene un usuario del tenant.
func (uc *UserUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := toUserResponse(user)
	return &out, nil
}

// List lista usuarios del tenant.
func (uc *UserUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	page = normalizePage(page)
	list, total, err := uc.repo.List(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return listResponse(list, total, page, toUserResponse), nil
}
