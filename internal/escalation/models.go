// internal/escalation/models.go
package escalation

import "support-chat-backend/internal/models"

// Request carries the contact details and transcript for one follow-up
// hand-off.
type Request struct {
	Email      string           `json:"email"`
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Phone      string           `json:"phone,omitempty"`
	Question   string           `json:"question"`
	ThreadID   string           `json:"conversationId,omitempty"`
	Transcript []models.Message `json:"chatHistory"`
	CCEmail    string           `json:"ccEmail,omitempty"`
}

// Result reports a completed hand-off.
type Result struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
	MessageID string `json:"messageId"`
}
