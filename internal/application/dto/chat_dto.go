package dto

// ChatRequest mensaje del usuario al asistente.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ChatResponse respuesta del asistente.
type ChatResponse struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
}

// AdminResult resultado de /migrate y /seed.
type AdminResult struct {
	Status  string   `json:"status"`
	Applied []string `json:"applied,omitempty"`
}
