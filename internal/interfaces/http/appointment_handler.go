package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// AppointmentHandler maneja las peticiones HTTP de citas.
type AppointmentHandler struct {
	uc *usecase.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *usecase.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Create godoc
// @Summary      Agendar cita
// @Description  scheduledEnd se deriva de duration (60 por defecto) o duration del rango.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID  header  string  true  "Tenant"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), GetUserID(c), raw)
	if err != nil {
		return writeError(c, "appointment.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/appointments?status=&customerId=&from=&to=
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	filter := repository.AppointmentFilter{
		Status:     strings.ToUpper(c.Query("status")),
		CustomerID: c.Query("customerId"),
	}
	var problems []validation.FieldError
	if from, ok, err := queryDate(c, "from"); err != nil {
		problems = append(problems, validation.FieldError{Field: "from", Reason: validation.ReasonFormat})
	} else if ok {
		filter.From = &from
	}
	if to, ok, err := queryDate(c, "to"); err != nil {
		problems = append(problems, validation.FieldError{Field: "to", Reason: validation.ReasonFormat})
	} else if ok {
		filter.To = &to
	}
	if len(problems) > 0 {
		return writeError(c, "appointment.list", validation.NewError(problems...))
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), filter, pageFrom(c))
	if err != nil {
		return writeError(c, "appointment.list", err)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/appointments/:id
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, "appointment.get", err)
	}
	return c.JSON(out)
}

// Update PUT /api/v1/appointments/:id
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), c.Params("id"), raw)
	if err != nil {
		return writeError(c, "appointment.update", err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), c.Params("id")); err != nil {
		return writeError(c, "appointment.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// queryDate lee un parámetro de fecha con los mismos formatos que aceptan los cuerpos JSON.
func queryDate(c *fiber.Ctx, name string) (time.Time, bool, error) {
	s := c.Query(name)
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
