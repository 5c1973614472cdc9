package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

// Códigos de error del sobre {code, message, fields}.
const (
	CodeMissingTenant  = "MISSING_TENANT"
	CodeUnknownTenant  = "UNKNOWN_TENANT"
	CodeInactiveTenant = "INACTIVE_TENANT"
	CodeInvalidBody    = "INVALID_BODY"
	CodeValidation     = "VALIDATION"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeUpstream       = "UPSTREAM_ERROR"
	CodeTimeout        = "TIMEOUT"
	CodeInternal       = "INTERNAL"
)

// statusFor traduce un error de dominio a status HTTP, código y mensaje público.
// Los errores de persistencia o inesperados nunca exponen su detalle.
func statusFor(err error) (int, dto.ErrorResponse) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		fields := make([]dto.FieldProblem, 0)
		for _, fe := range verr.Fields() {
			fields = append(fields, dto.FieldProblem{Field: fe.Field, Reason: fe.Reason})
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: "datos inválidos", Fields: fields}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrMissingTenant):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeMissingTenant, Message: err.Error()}
	case errors.Is(err, domain.ErrUnknownTenant):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnknownTenant, Message: err.Error()}
	case errors.Is(err, domain.ErrInactiveTenant):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeInactiveTenant, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrTimeout):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Code: CodeTimeout, Message: domain.ErrTimeout.Error()}
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: CodeUpstream, Message: domain.ErrUpstream.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"}
	}
}

// writeError responde con el sobre de error. Los 5xx se registran con el contexto del request.
func writeError(c *fiber.Ctx, op string, err error) error {
	status, body := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logFor(c).Error().Err(err).Str("op", op).Int("status", status).Msg("operación fallida")
	}
	return c.Status(status).JSON(body)
}

// logFor devuelve el logger del request (con request_id y tenant_id) o uno nulo.
func logFor(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}

// decodeBody lee el cuerpo JSON como objeto genérico; los números se conservan como json.Number
// para que el validador distinga enteros de decimales. Cuerpo vacío = objeto vacío.
func decodeBody(c *fiber.Ctx) (map[string]any, error) {
	body := bytes.TrimSpace(c.Body())
	raw := map[string]any{}
	if len(body) == 0 {
		return raw, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido: se espera un objeto JSON"})
}

// pageFrom lee limit/offset de la query. Valores no numéricos se tratan como ausentes.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	return page
}
