// internal/handlers/chat/models.go
package chat

import "support-chat-backend/internal/models"

// Request is one chat turn from the widget. ConversationID and
// ParentMessageID are the widget's copy of the threading identifiers; they
// seed a session that has none and are otherwise ignored, the session's own
// values win.
type Request struct {
	Message         string `json:"message"`
	Language        string `json:"language,omitempty"`
	SessionID       string `json:"sessionId,omitempty"`
	ConversationID  string `json:"conversationId,omitempty"`
	ParentMessageID string `json:"parentMessageId,omitempty"`
}

// LanguageSwitchRequest resets a conversation into a new language.
type LanguageSwitchRequest struct {
	SessionID string `json:"sessionId"`
	Language  string `json:"language"`
}

type LanguageSwitchResponse struct {
	SessionID      string `json:"sessionId"`
	Language       string `json:"language"`
	WelcomeMessage string `json:"welcomeMessage"`
}

// Response carries the rendered bot turn back to the widget.
type Response struct {
	SystemMessage      string            `json:"systemMessage"`
	ConversationID     string            `json:"conversationId"`
	SystemMessageID    string            `json:"systemMessageId"`
	SourceAttributions []models.Citation `json:"sourceAttributions"`
	ConfidenceScore    int               `json:"confidenceScore"`
	SessionID          string            `json:"sessionId"`
	IsNoAnswerFound    bool              `json:"isNoAnswerFound,omitempty"`
}
