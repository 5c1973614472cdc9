package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

const (
	maxChatMessageLen = 4000
	maxChatHistory    = 20
	chatSystemPrompt  = "You are the dispatch assistant of a field service company. " +
		"Help office staff with customers, appointments, jobs and invoices. Answer briefly."
)

// ChatUseCase reenvía mensajes al asistente de IA y conserva el historial por conversación.
// Cada llamada al LLM se limita con timeout para que la latencia externa no bloquee el servidor.
type ChatUseCase struct {
	llm     ports.LLMService
	history ports.KVStore
	timeout time.Duration
	ttl     time.Duration
	log     *logger.Logger
}

// NewChatUseCase construye el caso de uso. history puede ser nil (sin memoria entre mensajes).
func NewChatUseCase(llm ports.LLMService, history ports.KVStore, timeout, ttl time.Duration, log *logger.Logger) *ChatUseCase {
	return &ChatUseCase{llm: llm, history: history, timeout: timeout, ttl: ttl, log: log}
}

// Send valida el mensaje, lo envía con el historial y guarda el nuevo turno.
// Timeout → domain.ErrTimeout; cualquier otro fallo del proveedor → domain.ErrUpstream.
func (uc *ChatUseCase) Send(ctx context.Context, tenantID string, in dto.ChatRequest) (*dto.ChatResponse, error) {
	msg := strings.TrimSpace(in.Message)
	switch {
	case msg == "":
		return nil, validation.NewError(validation.FieldError{Field: "message", Reason: validation.ReasonMissing})
	case len(msg) > maxChatMessageLen:
		return nil, validation.NewError(validation.FieldError{Field: "message", Reason: validation.ReasonTooLong})
	}
	convID := strings.TrimSpace(in.ConversationID)
	if convID == "" {
		convID = uuid.New().String()
	}
	key := "chat:" + tenantID + ":" + convID
	history := uc.load(ctx, key)

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	reply, err := uc.llm.Chat(callCtx, tenantID, chatSystemPrompt, history, msg)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrTimeout):
			return nil, fmt.Errorf("%w: asistente de IA", domain.ErrTimeout)
		case errors.Is(err, domain.ErrUpstream):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
	}

	history = append(history,
		ports.ChatMessage{Role: ports.ChatRoleUser, Content: msg},
		ports.ChatMessage{Role: ports.ChatRoleAssistant, Content: reply},
	)
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	uc.save(ctx, key, history)
	return &dto.ChatResponse{ConversationID: convID, Reply: reply}, nil
}

func (uc *ChatUseCase) load(ctx context.Context, key string) []ports.ChatMessage {
	if uc.history == nil {
		return nil
	}
	raw, ok, err := uc.history.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("historial de chat no disponible")
		return nil
	}
	if !ok {
		return nil
	}
	var list []ports.ChatMessage
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}

func (uc *ChatUseCase) save(ctx context.Context, key string, history []ports.ChatMessage) {
	if uc.history == nil {
		return
	}
	b, err := json.Marshal(history)
	if err != nil {
		return
	}
	if err := uc.history.Set(ctx, key, string(b), uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el historial de chat")
	}
}
