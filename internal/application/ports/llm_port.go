package ports

import "context"

// Roles de un mensaje de conversación.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage turno de una conversación con el asistente.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMService define el puerto de salida hacia el asistente de IA.
// Cualquier adaptador (gateway HTTP, Anthropic, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	// Chat envía el historial más el mensaje nuevo y devuelve la respuesta del asistente.
	Chat(ctx context.Context, tenantID, system string, history []ChatMessage, message string) (string, error)
}
