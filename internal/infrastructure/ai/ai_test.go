package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

var history = []ports.ChatMessage{
	{Role: ports.ChatRoleUser, Content: "hola"},
	{Role: ports.ChatRoleAssistant, Content: "¿en qué ayudo?"},
}

func TestGatewayService_Chat(t *testing.T) {
	var got gatewayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"tres citas mañana"}`))
	}))
	defer srv.Close()

	svc := NewGatewayService(srv.URL+"/", time.Second, logger.Nop())
	reply, err := svc.Chat(context.Background(), "t-1", "system", history, "¿agenda?")
	require.NoError(t, err)
	assert.Equal(t, "tres citas mañana", reply)
	assert.Equal(t, "t-1", got.TenantID)
	assert.Equal(t, "system", got.System)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, ports.ChatMessage{Role: ports.ChatRoleUser, Content: "¿agenda?"}, got.Messages[2])
}

func TestGatewayService_Errores(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"5xx", http.StatusBadGateway, `{"error":"model overloaded"}`, domain.ErrUpstream},
		{"timeout del gateway", http.StatusGatewayTimeout, `{}`, domain.ErrTimeout},
		{"respuesta vacía", http.StatusOK, `{"reply":""}`, domain.ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGatewayService(srv.URL, time.Second, logger.Nop()).Chat(context.Background(), "t-1", "", nil, "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGatewayService_ContextoVencido(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewGatewayService(srv.URL, 5*time.Second, logger.Nop()).Chat(ctx, "t-1", "", nil, "x")
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestAnthropicService_Chat(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Listo. "},{"type":"text","text":"Agendado."}]}`))
	}))
	defer srv.Close()

	svc := newAnthropicService(srv.URL, "key", "claude-test", time.Second)
	reply, err := svc.Chat(context.Background(), "t-1", "system", history, "agenda")
	require.NoError(t, err)
	assert.Equal(t, "Listo. Agendado.", reply)
	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, "system", got.System)
	assert.Len(t, got.Messages, 3)
}

func TestAnthropicService_Errores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	_, err := newAnthropicService(srv.URL, "key", "m", time.Second).Chat(context.Background(), "t-1", "", nil, "x")
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "rate_limit_error")

	_, err = NewAnthropicService("", "m", time.Second).Chat(context.Background(), "t-1", "", nil, "x")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
