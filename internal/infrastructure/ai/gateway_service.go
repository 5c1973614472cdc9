package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

var _ ports.LLMService = (*GatewayService)(nil)

// gatewayRequest cuerpo de POST /chat del gateway de IA.
type gatewayRequest struct {
	TenantID string              `json:"tenantId"`
	System   string              `json:"system,omitempty"`
	Messages []ports.ChatMessage `json:"messages"`
}

type gatewayResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// GatewayService adaptador de LLMService contra el gateway HTTP interno de IA.
// Sin reintentos: un mensaje de chat no es idempotente.
type GatewayService struct {
	httpClient *resty.Client
	log        *logger.Logger
}

// NewGatewayService crea el cliente. timeout es el tope de red; el caso de uso además
// limita cada llamada con su propio contexto.
func NewGatewayService(baseURL string, timeout time.Duration, log *logger.Logger) *GatewayService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &GatewayService{httpClient: client, log: log}
}

// Chat envía historial + mensaje y devuelve la respuesta del asistente.
func (s *GatewayService) Chat(ctx context.Context, tenantID, system string, history []ports.ChatMessage, message string) (string, error) {
	messages := make([]ports.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ports.ChatMessage{Role: ports.ChatRoleUser, Content: message})

	var out gatewayResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(gatewayRequest{TenantID: tenantID, System: system, Messages: messages}).
		SetResult(&out).
		SetError(&out).
		Post("/chat")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", fmt.Errorf("%w: gateway de IA", domain.ErrTimeout)
		}
		s.log.Error().Err(err).Str("tenant_id", tenantID).Msg("gateway de IA: llamada fallida")
		return "", fmt.Errorf("%w: gateway de IA: %v", domain.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode() == 504 || resp.StatusCode() == 408:
		return "", fmt.Errorf("%w: gateway de IA HTTP %d", domain.ErrTimeout, resp.StatusCode())
	case resp.IsError():
		s.log.Error().Int("status_code", resp.StatusCode()).Str("tenant_id", tenantID).Str("error", out.Error).
			Msg("gateway de IA devolvió error")
		return "", fmt.Errorf("%w: gateway de IA HTTP %d", domain.ErrUpstream, resp.StatusCode())
	case strings.TrimSpace(out.Reply) == "":
		return "", fmt.Errorf("%w: gateway de IA devolvió respuesta vacía", domain.ErrUpstream)
	}
	return out.Reply, nil
}
