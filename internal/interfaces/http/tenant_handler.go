package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
)

// TenantHandler alta pública de organizaciones y consulta por slug.
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar organización
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), raw)
	if err != nil {
		return writeError(c, "tenant.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBySlug GET /api/v1/tenants/:slug
func (h *TenantHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return writeError(c, "tenant.get", err)
	}
	return c.JSON(out)
}
