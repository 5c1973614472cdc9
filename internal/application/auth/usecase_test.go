package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fieldservice-api/internal/application/auth"
	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
	"github.com/jhoicas/fieldservice-api/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("password-123"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	users := []entity.User{
		{ID: "u-1", TenantID: "t-1", Email: "ana@acme.com", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: "active", CreatedAt: now},
		{ID: "u-2", TenantID: "t-1", Email: "old@acme.com", PasswordHash: string(hash), Role: entity.RoleTechnician, Status: "inactive", CreatedAt: now},
		{ID: "u-3", TenantID: "t-2", Email: "bob@other.com", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: "active", CreatedAt: now},
	}
	for i := range users {
		require.NoError(t, store.Users().Create(context.Background(), &users[i]))
	}
	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "fieldservice-api"})
	return uc, store
}

func TestLogin(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	res, err := uc.Login(ctx, "t-1", dto.LoginRequest{Email: " ANA@acme.com ", Password: "password-123"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", res.User.ID)

	userID, tenantID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "t-1", tenantID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		tenantID string
		in       dto.LoginRequest
		want     error
	}{
		{"password incorrecto", "t-1", dto.LoginRequest{Email: "ana@acme.com", Password: "nope"}, domain.ErrUnauthorized},
		{"email desconocido", "t-1", dto.LoginRequest{Email: "x@acme.com", Password: "password-123"}, domain.ErrUnauthorized},
		{"usuario de otro tenant", "t-1", dto.LoginRequest{Email: "bob@other.com", Password: "password-123"}, domain.ErrUnauthorized},
		{"usuario inactivo", "t-1", dto.LoginRequest{Email: "old@acme.com", Password: "password-123"}, domain.ErrForbidden},
		{"campos vacíos", "t-1", dto.LoginRequest{}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Login(ctx, tt.tenantID, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIdentify(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	token, err := jwt.Generate(secret, "u-1", "t-1", entity.RoleAdmin, "fieldservice-api", 5)
	require.NoError(t, err)
	foreign, err := jwt.Generate(secret, "u-3", "t-2", entity.RoleAdmin, "fieldservice-api", 5)
	require.NoError(t, err)

	assert.Equal(t, "u-1", uc.Identify(ctx, "t-1", "Bearer "+token, ""))
	assert.Equal(t, "u-1", uc.Identify(ctx, "t-1", "", "u-1"))
	assert.Empty(t, uc.Identify(ctx, "t-1", "Bearer "+foreign, ""))
	assert.Empty(t, uc.Identify(ctx, "t-1", "Bearer basura", ""))
	assert.Empty(t, uc.Identify(ctx, "t-1", "", "u-3"))
	assert.Empty(t, uc.Identify(ctx, "t-1", "", ""))
	// Un token inválido no impide usar la cabecera.
	assert.Equal(t, "u-1", uc.Identify(ctx, "t-1", "Bearer basura", "u-1"))
}
