package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
)

// ChatHandler reenvía mensajes al asistente de IA del tenant.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Send godoc
// @Summary      Conversar con el asistente
// @Description  Reenvía el mensaje al proveedor LLM configurado con el historial de la conversación.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID  header  string  true  "Tenant"
// @Param        body  body  dto.ChatRequest  true  "message y conversationId opcional"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/v1/chat [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Send(c.UserContext(), GetTenantID(c), req)
	if err != nil {
		return writeError(c, "chat.send", err)
	}
	return c.JSON(out)
}
