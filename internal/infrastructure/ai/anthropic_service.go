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
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	anthropicMaxTok  = 1024
)

// AnthropicService adaptador que implementa LLMService contra la Messages API de Anthropic.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *resty.Client
}

// NewAnthropicService construye el adaptador. model suele ser "claude-3-5-haiku-latest".
func NewAnthropicService(apiKey, model string, timeout time.Duration) *AnthropicService {
	return newAnthropicService(anthropicBaseURL, apiKey, model, timeout)
}

func newAnthropicService(baseURL, apiKey, model string, timeout time.Duration) *AnthropicService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("content-type", "application/json")
	return &AnthropicService{apiKey: apiKey, model: model, httpClient: client}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string              `json:"model"`
	MaxTokens int                 `json:"max_tokens"`
	System    string              `json:"system,omitempty"`
	Messages  []ports.ChatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Chat envía el historial más el mensaje nuevo y concatena los bloques de texto de la respuesta.
func (s *AnthropicService) Chat(ctx context.Context, _ string, system string, history []ports.ChatMessage, message string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY no configurado", domain.ErrUpstream)
	}
	messages := make([]ports.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ports.ChatMessage{Role: ports.ChatRoleUser, Content: message})

	var out anthropicResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(anthropicRequest{Model: s.model, MaxTokens: anthropicMaxTok, System: system, Messages: messages}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/messages")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", fmt.Errorf("%w: Anthropic", domain.ErrTimeout)
		}
		return "", fmt.Errorf("%w: Anthropic: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}

	// Manejar errores HTTP de la API de Anthropic
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("%w: Anthropic error (%s): %s", domain.ErrUpstream, out.Error.Type, out.Error.Message)
		}
		return "", fmt.Errorf("%w: Anthropic HTTP %d", domain.ErrUpstream, resp.StatusCode())
	}

	var b strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", fmt.Errorf("%w: Claude devolvió respuesta vacía", domain.ErrUpstream)
	}
	return reply, nil
}
