// internal/handlers/conversation/models.go
package conversation

import "support-chat-backend/internal/models"

// Record is the stored-conversation shape returned to the widget.
type Record struct {
	ConversationID      string                `json:"conversationId"`
	LastSystemMessageID string                `json:"lastSystemMessageId"`
	ChatHistory         []models.HistoryEntry `json:"chatHistory"`
	LastUpdated         int64                 `json:"lastUpdated"`
}

// Response wraps a Record; Conversation is null for unknown sessions.
type Response struct {
	Conversation *Record `json:"conversation"`
}
