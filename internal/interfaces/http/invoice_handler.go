package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc *usecase.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create crea una factura con sus líneas; subtotal, impuesto y total se calculan en el servidor.
// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), raw)
	if err != nil {
		return writeError(c, "invoice.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/invoices?status=&customerId=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter := repository.InvoiceFilter{
		Status:     strings.ToUpper(c.Query("status")),
		CustomerID: c.Query("customerId"),
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), filter, pageFrom(c))
	if err != nil {
		return writeError(c, "invoice.list", err)
	}
	return c.JSON(out)
}

// GetByID obtiene el detalle completo de una factura.
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, "invoice.get", err)
	}
	return c.JSON(out)
}

// Update PUT /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	raw, err := decodeBody(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), c.Params("id"), raw)
	if err != nil {
		return writeError(c, "invoice.update", err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/invoices/:id. La factura queda anulada (VOID).
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), c.Params("id")); err != nil {
		return writeError(c, "invoice.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        X-Tenant-ID  header  string  true  "Tenant"
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.PDF(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, "invoice.pdf", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
