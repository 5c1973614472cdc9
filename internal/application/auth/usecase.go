package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	"github.com/jhoicas/fieldservice-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y atribución de usuario por request.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password dentro del tenant, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, tenantID string, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// Identify devuelve el ID del usuario que origina el request, o "" si no se puede atribuir.
// Acepta un Bearer JWT emitido para el mismo tenant o un X-User-ID de un usuario del tenant.
// Valores inválidos o ajenos se ignoran: la atribución nunca hace fallar el request.
func (uc *AuthUseCase) Identify(ctx context.Context, tenantID, authorization, userHeader string) string {
	if token, ok := bearerToken(authorization); ok && uc.jwtCfg.Secret != "" {
		userID, tokenTenant, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
		if err == nil && tokenTenant == tenantID {
			return userID
		}
	}
	userID := strings.TrimSpace(userHeader)
	if userID == "" {
		return ""
	}
	user, err := uc.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.ID
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
