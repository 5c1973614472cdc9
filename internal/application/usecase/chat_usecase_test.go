package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/kv"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

type fakeLLM struct {
	reply    string
	err      error
	block    bool
	lastHist []ports.ChatMessage
	tenantID string
}

func (f *fakeLLM) Chat(ctx context.Context, tenantID, _ string, history []ports.ChatMessage, message string) (string, error) {
	f.lastHist = history
	f.tenantID = tenantID
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply + ": " + message, nil
}

func TestChatSend_GuardaHistorial(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	history := kv.NewMemoryKV()
	uc := usecase.NewChatUseCase(llm, history, time.Second, time.Hour, logger.Nop())
	ctx := context.Background()

	first, err := uc.Send(ctx, tenantA, dto.ChatRequest{Message: " hola "})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ConversationID)
	assert.Equal(t, "ok: hola", first.Reply)
	assert.Empty(t, llm.lastHist)
	assert.Equal(t, tenantA, llm.tenantID)

	_, err = uc.Send(ctx, tenantA, dto.ChatRequest{Message: "¿y mañana?", ConversationID: first.ConversationID})
	require.NoError(t, err)
	require.Len(t, llm.lastHist, 2)
	assert.Equal(t, ports.ChatMessage{Role: ports.ChatRoleUser, Content: "hola"}, llm.lastHist[0])
	assert.Equal(t, ports.ChatRoleAssistant, llm.lastHist[1].Role)

	// Otro tenant no ve la conversación.
	_, err = uc.Send(ctx, tenantB, dto.ChatRequest{Message: "x", ConversationID: first.ConversationID})
	require.NoError(t, err)
	assert.Empty(t, llm.lastHist)
}

func TestChatSend_HistorialAcotado(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	uc := usecase.NewChatUseCase(llm, kv.NewMemoryKV(), time.Second, time.Hour, logger.Nop())
	ctx := context.Background()
	req := dto.ChatRequest{Message: "m", ConversationID: "conv-1"}
	for i := 0; i < 15; i++ {
		_, err := uc.Send(ctx, tenantA, req)
		require.NoError(t, err)
	}
	assert.Len(t, llm.lastHist, 20)
}

func TestChatSend_Errores(t *testing.T) {
	ctx := context.Background()

	t.Run("mensaje vacío", func(t *testing.T) {
		uc := usecase.NewChatUseCase(&fakeLLM{}, nil, time.Second, time.Hour, logger.Nop())
		_, err := uc.Send(ctx, tenantA, dto.ChatRequest{Message: "   "})
		requireFieldError(t, err, "message", "requerido")
	})

	t.Run("timeout", func(t *testing.T) {
		uc := usecase.NewChatUseCase(&fakeLLM{block: true}, nil, 20*time.Millisecond, time.Hour, logger.Nop())
		_, err := uc.Send(ctx, tenantA, dto.ChatRequest{Message: "hola"})
		assert.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("proveedor caído", func(t *testing.T) {
		uc := usecase.NewChatUseCase(&fakeLLM{err: errors.New("503 service unavailable")}, nil, time.Second, time.Hour, logger.Nop())
		_, err := uc.Send(ctx, tenantA, dto.ChatRequest{Message: "hola"})
		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.NotErrorIs(t, err, domain.ErrTimeout)
	})
}
