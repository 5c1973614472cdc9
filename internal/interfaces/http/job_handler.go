package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// JobHandler maneja las peticiones HTTP de trabajos (órdenes de servicio).
type JobHandler struct {
	uc *usecase.JobUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *usecase.JobUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create godoc
// @Summary      Crear trabajo
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID  header  string  true  "Tenant"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), GetUserID(c), raw)
	if err != nil {
		return writeError(c, "job.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/jobs?status=IN_PROGRESS&customerId=&assignedToId=
func (h *JobHandler) List(c *fiber.Ctx) error {
	filter := repository.JobFilter{
		Status:       strings.ToUpper(c.Query("status")),
		CustomerID:   c.Query("customerId"),
		AssignedToID: c.Query("assignedToId"),
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), filter, pageFrom(c))
	if err != nil {
		return writeError(c, "job.list", err)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/jobs/:id
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, "job.get", err)
	}
	return c.JSON(out)
}

// Update PUT /api/v1/jobs/:id
func (h *JobHandler) Update(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), c.Params("id"), raw)
	if err != nil {
		return writeError(c, "job.update", err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/jobs/:id. El trabajo no se borra: pasa a CANCELLED.
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), c.Params("id")); err != nil {
		return writeError(c, "job.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
