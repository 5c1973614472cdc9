package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Description  Asigna customerNumber (CUST-000001…) y crea la dirección inline si viene "address".
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID  header  string  true  "Tenant"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), raw)
	if err != nil {
		return writeError(c, "customer.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/customers?status=ACTIVE&search=smith&limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	filter := repository.CustomerFilter{
		Status: strings.ToUpper(c.Query("status")),
		Search: c.Query("search"),
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), filter, pageFrom(c))
	if err != nil {
		return writeError(c, "customer.list", err)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, "customer.get", err)
	}
	return c.JSON(out)
}

// Update PUT /api/v1/customers/:id (actualización parcial: solo los campos presentes).
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), c.Params("id"), raw)
	if err != nil {
		return writeError(c, "customer.update", err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), c.Params("id")); err != nil {
		return writeError(c, "customer.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
