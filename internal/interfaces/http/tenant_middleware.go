package http

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

// Locals keys del request en Fiber.
const (
	LocalTenantID = "tenant_id"
	LocalUserID   = "user_id"
	LocalLogger   = "logger"
)

// DefaultTenantHeader cabecera que identifica el tenant cuando no se configura otra.
const DefaultTenantHeader = "X-Tenant-ID"

// tenantDirectory lo implementa *usecase.TenantUseCase.
type tenantDirectory interface {
	Resolve(ctx context.Context, id string) (*entity.Tenant, error)
}

// userIdentifier lo implementa *auth.AuthUseCase.
type userIdentifier interface {
	Identify(ctx context.Context, tenantID, authorization, userHeader string) string
}

// ResolveTenant normaliza el valor de la cabecera de tenant. Vacío → ErrMissingTenant.
func ResolveTenant(headerValue string) (string, error) {
	id := strings.TrimSpace(headerValue)
	if id == "" {
		return "", domain.ErrMissingTenant
	}
	return id, nil
}

// TenantMiddleware exige la cabecera de tenant y guarda el ID en c.Locals.
// Responde 401 antes de leer el cuerpo o tocar el almacenamiento.
func TenantMiddleware(header string) fiber.Handler {
	if header == "" {
		header = DefaultTenantHeader
	}
	return func(c *fiber.Ctx) error {
		tenantID, err := ResolveTenant(c.Get(header))
		if err != nil {
			return writeError(c, "resolve_tenant", err)
		}
		c.Locals(LocalTenantID, tenantID)
		c.Locals(LocalLogger, logger.Wrap(logFor(c).With().Str("tenant_id", tenantID).Logger()))
		return c.Next()
	}
}

// RequireKnownTenant verifica el tenant contra el directorio: desconocido → 401, inactivo → 403.
// Debe usarse DESPUÉS de TenantMiddleware.
func RequireKnownTenant(dir tenantDirectory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := dir.Resolve(c.UserContext(), GetTenantID(c)); err != nil {
			return writeError(c, "resolve_tenant", err)
		}
		return c.Next()
	}
}

// UserResolver atribuye el request a un usuario del tenant (Bearer JWT o X-User-ID).
// Si no se puede atribuir, el request sigue sin autor.
func UserResolver(id userIdentifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := id.Identify(c.UserContext(), GetTenantID(c), c.Get(fiber.HeaderAuthorization), c.Get("X-User-ID"))
		if userID != "" {
			c.Locals(LocalUserID, userID)
		}
		return c.Next()
	}
}

// RequireAdminKey protege /migrate y /seed con X-Admin-Key. Sin clave configurada las rutas
// quedan deshabilitadas (404).
func RequireAdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "operación deshabilitada"})
		}
		given := c.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "X-Admin-Key inválida"})
		}
		return c.Next()
	}
}

// GetTenantID devuelve el tenant del contexto (después de TenantMiddleware).
func GetTenantID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTenantID).(string)
	return s
}

// GetUserID devuelve el usuario atribuido al request, o "".
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
