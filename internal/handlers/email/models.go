// internal/handlers/email/models.go
package email

import "support-chat-backend/internal/models"

// Request is the follow-up escalation submission. SessionID, when present,
// lets the service append the confirmation message to the live conversation.
type Request struct {
	Email          string           `json:"email"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Phone          string           `json:"phone,omitempty"`
	Question       string           `json:"question"`
	ConversationID string           `json:"conversationId,omitempty"`
	ChatHistory    []models.Message `json:"chatHistory"`
	CCEmail        string           `json:"ccEmail,omitempty"`
	SessionID      string           `json:"sessionId,omitempty"`
}
