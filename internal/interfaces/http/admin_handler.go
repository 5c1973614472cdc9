package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
)

// AdminHandler migraciones y datos de demostración (protegido con X-Admin-Key).
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Migrate POST /api/v1/migrate
func (h *AdminHandler) Migrate(c *fiber.Ctx) error {
	out, err := h.uc.Migrate(c.UserContext())
	if err != nil {
		return writeError(c, "admin.migrate", err)
	}
	logFor(c).Info().Strs("applied", out.Applied).Msg("migraciones aplicadas")
	return c.JSON(out)
}

// Seed POST /api/v1/seed
func (h *AdminHandler) Seed(c *fiber.Ctx) error {
	out, err := h.uc.Seed(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, "admin.seed", err)
	}
	logFor(c).Info().Strs("created", out.Applied).Msg("datos de demostración creados")
	return c.JSON(out)
}
