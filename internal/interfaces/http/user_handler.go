package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
)

// UserHandler maneja los usuarios del tenant (técnicos, despachadores, administradores).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID  header  string  true  "Tenant"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), raw)
	if err != nil {
		return writeError(c, "user.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), pageFrom(c))
	if err != nil {
		return writeError(c, "user.list", err)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, "user.get", err)
	}
	return c.JSON(out)
}
